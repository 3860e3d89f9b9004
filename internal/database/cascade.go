package database

import (
	"github.com/binmap-app/core/internal/models"
	"gorm.io/gorm"
)

// Cascading deletes are done by an explicit walk of the reference graph
// instead of FK-level ON DELETE CASCADE, so the chain
// State → Municipality → Place → {Favorite, VisitedPlace} is applied
// deterministically regardless of dialect. Each function runs inside a
// single transaction; callers get all-or-nothing semantics.

// DeleteState removes a state, its municipalities and everything below.
func DeleteState(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var municipalityIDs []string
		if err := tx.Model(&models.MunicipalityModel{}).
			Where("state_id = ?", id).Pluck("id", &municipalityIDs).Error; err != nil {
			return err
		}
		for _, mid := range municipalityIDs {
			if err := deleteMunicipalityTx(tx, mid); err != nil {
				return err
			}
		}

		res := tx.Delete(&models.StateModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteMunicipality removes a municipality, its places, their relation
// rows and the municipality's route links.
func DeleteMunicipality(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return deleteMunicipalityTx(tx, id)
	})
}

// DeleteCategory removes a category and cascades through its places.
func DeleteCategory(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deletePlacesWhere(tx, "category_id = ?", id); err != nil {
			return err
		}
		res := tx.Delete(&models.CategoryModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteRoute removes a route, its places and its municipality links.
func DeleteRoute(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deletePlacesWhere(tx, "route_id = ?", id); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("route_id = ?", id).
			Delete(&models.MunicipalityRouteModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.RouteModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeletePlace removes a place and its favorite/visited rows.
func DeletePlace(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteRelationRowsForPlaces(tx, []string{id}); err != nil {
			return err
		}
		res := tx.Delete(&models.PlaceModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func deleteMunicipalityTx(tx *gorm.DB, id string) error {
	if err := deletePlacesWhere(tx, "municipality_id = ?", id); err != nil {
		return err
	}
	if err := tx.Unscoped().Where("municipality_id = ?", id).
		Delete(&models.MunicipalityRouteModel{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&models.MunicipalityModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deletePlacesWhere(tx *gorm.DB, query string, args ...interface{}) error {
	var placeIDs []string
	if err := tx.Model(&models.PlaceModel{}).
		Where(query, args...).Pluck("id", &placeIDs).Error; err != nil {
		return err
	}
	if len(placeIDs) == 0 {
		return nil
	}
	if err := deleteRelationRowsForPlaces(tx, placeIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", placeIDs).Delete(&models.PlaceModel{}).Error
}

// Relation rows and route links are removed for real: their unique pair
// indexes would otherwise keep soft-deleted rows in the way of re-adds.
func deleteRelationRowsForPlaces(tx *gorm.DB, placeIDs []string) error {
	if len(placeIDs) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("place_id IN ?", placeIDs).
		Delete(&models.FavoriteModel{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("place_id IN ?", placeIDs).
		Delete(&models.VisitedPlaceModel{}).Error
}
