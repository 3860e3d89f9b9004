package state

import (
	"errors"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

type CreateStateDTO struct {
	Name        string `json:"name" binding:"required,max=35"`
	Description string `json:"description"`
}

type UpdateStateDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=35"`
	Description *string `json:"description"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(search string) ([]models.StateModel, error) {
	q := s.db.Order("created_at ASC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var states []models.StateModel
	return states, q.Find(&states).Error
}

func (s *Service) GetByID(id string) (*models.StateModel, error) {
	var st models.StateModel
	if err := s.db.First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (s *Service) Create(dto *CreateStateDTO) (*models.StateModel, error) {
	st := models.StateModel{Name: dto.Name, Description: dto.Description}
	return &st, s.db.Create(&st).Error
}

func (s *Service) Update(id string, dto *UpdateStateDTO) (*models.StateModel, error) {
	st, err := s.GetByID(id)
	if err != nil || st == nil {
		return st, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	return st, s.db.Model(st).Updates(updates).Error
}

// Delete removes the state and cascades through municipalities, places
// and their relation rows.
func (s *Service) Delete(id string) error {
	return database.DeleteState(s.db, id)
}
