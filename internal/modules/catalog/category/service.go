package category

import (
	"errors"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(search string) ([]models.CategoryModel, error) {
	q := s.db.Order("created_at ASC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var cats []models.CategoryModel
	return cats, q.Find(&cats).Error
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	cat := models.CategoryModel{Name: dto.Name, Description: dto.Description}
	return &cat, s.db.Create(&cat).Error
}

func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	return cat, s.db.Model(cat).Updates(updates).Error
}

// Delete removes the category and cascades through its places.
func (s *Service) Delete(id string) error {
	return database.DeleteCategory(s.db, id)
}
