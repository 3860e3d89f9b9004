package place

import (
	"errors"
	"fmt"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"github.com/binmap-app/core/internal/pkg/pagination"
	"github.com/binmap-app/core/internal/pkg/response"
	"gorm.io/gorm"
)

// errBadReference marks a create/update that points at a missing
// municipality, category or route.
type errBadReference struct{ kind string }

func (e errBadReference) Error() string { return e.kind + " not found" }

type CreatePlaceDTO struct {
	Name           string            `json:"name"        binding:"required,max=50"`
	Description    string            `json:"description" binding:"required"`
	Latitude       *float64          `json:"latitude"    binding:"required,gte=-90,lte=90"`
	Longitude      *float64          `json:"longitude"   binding:"required,gte=-180,lte=180"`
	Image          string            `json:"image"`
	Video          string            `json:"video"`
	IsVisited      *bool             `json:"is_visited"`
	VisitedDate    *models.DateOnly  `json:"visited_date"`
	MunicipalityID string            `json:"municipality_id" binding:"required"`
	CategoryID     string            `json:"category_id"     binding:"required"`
	RouteID        string            `json:"route_id"        binding:"required"`
}

type UpdatePlaceDTO struct {
	Name           *string          `json:"name"        binding:"omitempty,max=50"`
	Description    *string          `json:"description"`
	Latitude       *float64         `json:"latitude"    binding:"omitempty,gte=-90,lte=90"`
	Longitude      *float64         `json:"longitude"   binding:"omitempty,gte=-180,lte=180"`
	Image          *string          `json:"image"`
	Video          *string          `json:"video"`
	IsVisited      *bool            `json:"is_visited"`
	VisitedDate    *models.DateOnly `json:"visited_date"`
	MunicipalityID *string          `json:"municipality_id"`
	CategoryID     *string          `json:"category_id"`
	RouteID        *string          `json:"route_id"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns a page of places with their full association chain
// loaded. search matches the place name or the name/id of the owning
// municipality, category or route.
func (s *Service) List(search string, q pagination.Query) ([]models.PlaceModel, response.Pagination, error) {
	query := s.db.Model(&models.PlaceModel{}).
		Preload("Municipality.State").
		Preload("Category").
		Preload("Route").
		Order("places.created_at ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN municipalities ON municipalities.id = places.municipality_id").
			Joins("LEFT JOIN categories ON categories.id = places.category_id").
			Joins("LEFT JOIN routes ON routes.id = places.route_id").
			Where(`places.name LIKE ?
				OR municipalities.name LIKE ? OR municipalities.id = ?
				OR categories.name LIKE ? OR categories.id = ?
				OR routes.name LIKE ? OR routes.id = ?`,
				like, like, search, like, search, like, search)
	}

	var places []models.PlaceModel
	page, err := pagination.Paginate(query, q, &places)
	return places, page, err
}

func (s *Service) GetByID(id string) (*models.PlaceModel, error) {
	var p models.PlaceModel
	err := s.db.
		Preload("Municipality.State").
		Preload("Category").
		Preload("Route").
		First(&p, "places.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *CreatePlaceDTO) (*models.PlaceModel, error) {
	if err := s.checkReferences(dto.MunicipalityID, dto.CategoryID, dto.RouteID); err != nil {
		return nil, err
	}

	p := models.PlaceModel{
		Name:           dto.Name,
		Description:    dto.Description,
		Latitude:       *dto.Latitude,
		Longitude:      *dto.Longitude,
		Image:          dto.Image,
		Video:          dto.Video,
		VisitedDate:    dto.VisitedDate,
		MunicipalityID: dto.MunicipalityID,
		CategoryID:     dto.CategoryID,
		RouteID:        dto.RouteID,
	}
	if dto.IsVisited != nil {
		p.IsVisited = *dto.IsVisited
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return s.GetByID(p.ID)
}

func (s *Service) Update(id string, dto *UpdatePlaceDTO) (*models.PlaceModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}

	municipalityID := p.MunicipalityID
	if dto.MunicipalityID != nil {
		municipalityID = *dto.MunicipalityID
	}
	categoryID := p.CategoryID
	if dto.CategoryID != nil {
		categoryID = *dto.CategoryID
	}
	routeID := p.RouteID
	if dto.RouteID != nil {
		routeID = *dto.RouteID
	}
	if err := s.checkReferences(municipalityID, categoryID, routeID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"municipality_id": municipalityID,
		"category_id":     categoryID,
		"route_id":        routeID,
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Latitude != nil {
		updates["latitude"] = *dto.Latitude
	}
	if dto.Longitude != nil {
		updates["longitude"] = *dto.Longitude
	}
	if dto.Image != nil {
		updates["image"] = *dto.Image
	}
	if dto.Video != nil {
		updates["video"] = *dto.Video
	}
	if dto.IsVisited != nil {
		updates["is_visited"] = *dto.IsVisited
	}
	if dto.VisitedDate != nil {
		updates["visited_date"] = *dto.VisitedDate
	}
	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the place and its favorite/visited rows.
func (s *Service) Delete(id string) error {
	return database.DeletePlace(s.db, id)
}

func (s *Service) checkReferences(municipalityID, categoryID, routeID string) error {
	checks := []struct {
		kind  string
		model interface{}
		id    string
	}{
		{"municipality", &models.MunicipalityModel{}, municipalityID},
		{"category", &models.CategoryModel{}, categoryID},
		{"route", &models.RouteModel{}, routeID},
	}
	for _, chk := range checks {
		var count int64
		if err := s.db.Model(chk.model).Where("id = ?", chk.id).Count(&count).Error; err != nil {
			return fmt.Errorf("check %s reference: %w", chk.kind, err)
		}
		if count == 0 {
			return errBadReference{kind: chk.kind}
		}
	}
	return nil
}

// IsBadReference reports whether err is a missing-reference failure.
func IsBadReference(err error) bool {
	var e errBadReference
	return errors.As(err, &e)
}
