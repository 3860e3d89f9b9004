package municipality

import (
	"errors"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

var errStateNotFound = errors.New("state not found")

type CreateMunicipalityDTO struct {
	Name        string `json:"name"     binding:"required,max=35"`
	Description string `json:"description"`
	StateID     string `json:"state_id" binding:"required"`
}

type UpdateMunicipalityDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=35"`
	Description *string `json:"description"`
	StateID     *string `json:"state_id"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(search string) ([]models.MunicipalityModel, error) {
	q := s.db.Preload("State").Order("municipalities.created_at ASC")
	if search != "" {
		// Match by municipality name or owning state name, as the
		// original search filter did.
		q = q.Joins("LEFT JOIN states ON states.id = municipalities.state_id").
			Where("municipalities.name LIKE ? OR states.name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	var municipalities []models.MunicipalityModel
	return municipalities, q.Find(&municipalities).Error
}

func (s *Service) GetByID(id string) (*models.MunicipalityModel, error) {
	var m models.MunicipalityModel
	if err := s.db.Preload("State").First(&m, "municipalities.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(dto *CreateMunicipalityDTO) (*models.MunicipalityModel, error) {
	if ok, err := s.stateExists(dto.StateID); err != nil {
		return nil, err
	} else if !ok {
		return nil, errStateNotFound
	}

	m := models.MunicipalityModel{
		Name:        dto.Name,
		Description: dto.Description,
		StateID:     dto.StateID,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return s.GetByID(m.ID)
}

func (s *Service) Update(id string, dto *UpdateMunicipalityDTO) (*models.MunicipalityModel, error) {
	m, err := s.GetByID(id)
	if err != nil || m == nil {
		return m, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.StateID != nil {
		if ok, err := s.stateExists(*dto.StateID); err != nil {
			return nil, err
		} else if !ok {
			return nil, errStateNotFound
		}
		updates["state_id"] = *dto.StateID
	}
	if err := s.db.Model(m).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the municipality, its places, their relation rows and
// the municipality's route links.
func (s *Service) Delete(id string) error {
	return database.DeleteMunicipality(s.db, id)
}

func (s *Service) stateExists(id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.StateModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
