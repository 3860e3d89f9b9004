// Package relation implements the user-to-place relation rows: favorites
// and visited places. Both kinds share one contract: create is an
// idempotent no-op when the row already exists, delete only ever sees
// the caller's own rows, and toggle flips between the two.
package relation

import (
	"errors"

	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPlaceRequired means the request body carried no place id.
	ErrPlaceRequired = errors.New("place is required")
	// ErrPlaceNotFound means the referenced place does not exist.
	ErrPlaceNotFound = errors.New("place not found")
)

// detailPreloads is the association chain needed to build a full
// relation detail document.
var detailPreloads = []string{"Place.Municipality.State", "Place.Category", "Place.Route"}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) placeExists(placeID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PlaceModel{}).Where("id = ?", placeID).Count(&count).Error
	return count > 0, err
}

func (s *Service) withDetail(q *gorm.DB) *gorm.DB {
	for _, p := range detailPreloads {
		q = q.Preload(p)
	}
	return q
}

// ListFavorites returns the caller's favorite rows, oldest first.
func (s *Service) ListFavorites(userID string) ([]models.FavoriteModel, error) {
	var rows []models.FavoriteModel
	err := s.withDetail(s.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Service) getFavorite(userID, id string) (*models.FavoriteModel, error) {
	var row models.FavoriteModel
	err := s.withDetail(s.db).
		First(&row, "favorites.id = ? AND favorites.user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *Service) findFavoriteByPlace(userID, placeID string) (*models.FavoriteModel, error) {
	var row models.FavoriteModel
	err := s.db.First(&row, "user_id = ? AND place_id = ?", userID, placeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CreateFavorite adds a favorite row for the caller. If the row already
// exists the existing row is returned with existed=true; a repeated
// create is a successful no-op, never a conflict.
func (s *Service) CreateFavorite(userID, placeID string) (row *models.FavoriteModel, existed bool, err error) {
	if placeID == "" {
		return nil, false, ErrPlaceRequired
	}
	existing, err := s.findFavoriteByPlace(userID, placeID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		row, err = s.getFavorite(userID, existing.ID)
		return row, true, err
	}

	ok, err := s.placeExists(placeID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrPlaceNotFound
	}

	fresh := models.FavoriteModel{UserID: userID, PlaceID: placeID}
	if err := s.db.Create(&fresh).Error; err != nil {
		// Lost a race against a concurrent create for the same pair.
		// The unique index holds exactly one row, so serve that one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.findFavoriteByPlace(userID, placeID)
			if ferr != nil || existing == nil {
				return nil, false, err
			}
			row, err = s.getFavorite(userID, existing.ID)
			return row, true, err
		}
		return nil, false, err
	}
	row, err = s.getFavorite(userID, fresh.ID)
	return row, false, err
}

// DeleteFavorite removes the caller's favorite row by id. Rows owned by
// other users are indistinguishable from missing ones. The delete is
// hard: a soft-deleted row would still hold the (user, place) unique
// index and block a later re-add.
func (s *Service) DeleteFavorite(userID, id string) error {
	res := s.db.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.FavoriteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleFavorite removes the caller's favorite for the place if one
// exists, otherwise creates it. removed=true reports the remove branch.
func (s *Service) ToggleFavorite(userID, placeID string) (row *models.FavoriteModel, removed bool, err error) {
	if placeID == "" {
		return nil, false, ErrPlaceRequired
	}
	existing, err := s.findFavoriteByPlace(userID, placeID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := s.DeleteFavorite(userID, existing.ID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	row, _, err = s.CreateFavorite(userID, placeID)
	return row, false, err
}

// ListVisited returns the caller's visited-place rows, oldest first.
func (s *Service) ListVisited(userID string) ([]models.VisitedPlaceModel, error) {
	var rows []models.VisitedPlaceModel
	err := s.withDetail(s.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *Service) getVisited(userID, id string) (*models.VisitedPlaceModel, error) {
	var row models.VisitedPlaceModel
	err := s.withDetail(s.db).
		First(&row, "visited_places.id = ? AND visited_places.user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *Service) findVisitedByPlace(userID, placeID string) (*models.VisitedPlaceModel, error) {
	var row models.VisitedPlaceModel
	err := s.db.First(&row, "user_id = ? AND place_id = ?", userID, placeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CreateVisited adds a visited-place row for the caller. visitedDate
// defaults to today when absent. Same idempotency contract as
// CreateFavorite: an existing row is returned, not rejected.
func (s *Service) CreateVisited(userID, placeID string, visitedDate *models.DateOnly, notes string) (row *models.VisitedPlaceModel, existed bool, err error) {
	if placeID == "" {
		return nil, false, ErrPlaceRequired
	}
	existing, err := s.findVisitedByPlace(userID, placeID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		row, err = s.getVisited(userID, existing.ID)
		return row, true, err
	}

	ok, err := s.placeExists(placeID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrPlaceNotFound
	}

	date := models.Today()
	if visitedDate != nil {
		date = *visitedDate
	}
	fresh := models.VisitedPlaceModel{
		UserID:      userID,
		PlaceID:     placeID,
		VisitedDate: date,
		Notes:       notes,
	}
	if err := s.db.Create(&fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.findVisitedByPlace(userID, placeID)
			if ferr != nil || existing == nil {
				return nil, false, err
			}
			row, err = s.getVisited(userID, existing.ID)
			return row, true, err
		}
		return nil, false, err
	}
	row, err = s.getVisited(userID, fresh.ID)
	return row, false, err
}

// DeleteVisited removes the caller's visited row by id, owner-scoped
// and hard-deleted like DeleteFavorite.
func (s *Service) DeleteVisited(userID, id string) error {
	res := s.db.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.VisitedPlaceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleVisited flips the caller's visited mark for the place.
func (s *Service) ToggleVisited(userID, placeID string, visitedDate *models.DateOnly, notes string) (row *models.VisitedPlaceModel, removed bool, err error) {
	if placeID == "" {
		return nil, false, ErrPlaceRequired
	}
	existing, err := s.findVisitedByPlace(userID, placeID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := s.DeleteVisited(userID, existing.ID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	row, _, err = s.CreateVisited(userID, placeID, visitedDate, notes)
	return row, false, err
}
