package route

import (
	"errors"
	"time"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

var (
	errBadDuration          = errors.New("duration must be HH:MM:SS")
	errRouteNotFound        = errors.New("route not found")
	errMunicipalityNotFound = errors.New("municipality not found")
	errLinkExists           = errors.New("municipality is already linked to this route")
)

type CreateRouteDTO struct {
	Name        string `json:"name"     binding:"required,max=50"`
	Description string `json:"description"`
	Duration    string `json:"duration" binding:"required"`
}

type UpdateRouteDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
}

type CreateLinkDTO struct {
	MunicipalityID string `json:"municipality_id" binding:"required"`
	RouteID        string `json:"route_id"        binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(search string) ([]models.RouteModel, error) {
	q := s.db.Preload("Places").Order("created_at ASC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var routes []models.RouteModel
	return routes, q.Find(&routes).Error
}

// GetByID loads a route with its places. Links are fetched separately
// via LinksForRoute so the handler can build the detail projection.
func (s *Service) GetByID(id string) (*models.RouteModel, error) {
	var r models.RouteModel
	if err := s.db.Preload("Places").First(&r, "routes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// LinksForRoute returns the route's municipality links with the
// municipality loaded. The route detail stops at the state id, so the
// state rows are not fetched here.
func (s *Service) LinksForRoute(routeID string) ([]models.MunicipalityRouteModel, error) {
	var links []models.MunicipalityRouteModel
	err := s.db.Preload("Municipality").
		Where("route_id = ?", routeID).
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

func (s *Service) Create(dto *CreateRouteDTO) (*models.RouteModel, error) {
	if !validDuration(dto.Duration) {
		return nil, errBadDuration
	}
	r := models.RouteModel{
		Name:        dto.Name,
		Description: dto.Description,
		Duration:    dto.Duration,
	}
	return &r, s.db.Create(&r).Error
}

func (s *Service) Update(id string, dto *UpdateRouteDTO) (*models.RouteModel, error) {
	r, err := s.GetByID(id)
	if err != nil || r == nil {
		return r, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Duration != nil {
		if !validDuration(*dto.Duration) {
			return nil, errBadDuration
		}
		updates["duration"] = *dto.Duration
	}
	if err := s.db.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the route, its places and its municipality links.
func (s *Service) Delete(id string) error {
	return database.DeleteRoute(s.db, id)
}

// ListLinks returns all municipality-route links with both sides loaded.
func (s *Service) ListLinks() ([]models.MunicipalityRouteModel, error) {
	var links []models.MunicipalityRouteModel
	err := s.db.Preload("Municipality.State").Preload("Route").
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

func (s *Service) GetLink(id string) (*models.MunicipalityRouteModel, error) {
	var link models.MunicipalityRouteModel
	err := s.db.Preload("Municipality.State").Preload("Route").
		First(&link, "municipality_routes.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// CreateLink pairs a municipality with a route. The pair is unique.
func (s *Service) CreateLink(dto *CreateLinkDTO) (*models.MunicipalityRouteModel, error) {
	var count int64
	if err := s.db.Model(&models.MunicipalityModel{}).
		Where("id = ?", dto.MunicipalityID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errMunicipalityNotFound
	}
	if err := s.db.Model(&models.RouteModel{}).
		Where("id = ?", dto.RouteID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errRouteNotFound
	}

	link := models.MunicipalityRouteModel{
		MunicipalityID: dto.MunicipalityID,
		RouteID:        dto.RouteID,
	}
	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errLinkExists
		}
		return nil, err
	}
	return s.GetLink(link.ID)
}

// DeleteLink removes the link for real so the (municipality, route)
// unique pair can be created again later.
func (s *Service) DeleteLink(id string) error {
	res := s.db.Unscoped().Delete(&models.MunicipalityRouteModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func validDuration(raw string) bool {
	_, err := time.Parse("15:04:05", raw)
	return err == nil
}
