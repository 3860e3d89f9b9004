package models

// PlaceModel is a point of interest. It belongs to exactly one
// municipality, one category and one route.
type PlaceModel struct {
	Base
	Name        string  `json:"name"        gorm:"size:50;not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Latitude    float64 `json:"latitude"    gorm:"type:decimal(10,8);not null"`
	Longitude   float64 `json:"longitude"   gorm:"type:decimal(11,8);not null"`
	Image       string  `json:"image"`
	Video       string  `json:"video"`

	// Legacy global visited pair, superseded by VisitedPlaceModel rows.
	IsVisited   bool      `json:"is_visited"   gorm:"default:false"`
	VisitedDate *DateOnly `json:"visited_date"`

	MunicipalityID string `json:"municipality_id" gorm:"type:char(36);index;not null"`
	CategoryID     string `json:"category_id"     gorm:"type:char(36);index;not null"`
	RouteID        string `json:"route_id"        gorm:"type:char(36);index;not null"`

	Municipality *MunicipalityModel `json:"municipality,omitempty" gorm:"foreignKey:MunicipalityID"`
	Category     *CategoryModel     `json:"category,omitempty"     gorm:"foreignKey:CategoryID"`
	Route        *RouteModel        `json:"route,omitempty"        gorm:"foreignKey:RouteID"`
}

func (PlaceModel) TableName() string { return "places" }

// FavoriteModel links a user to a place. One row per (user, place).
type FavoriteModel struct {
	Base
	UserID  string `json:"user"  gorm:"type:char(36);uniqueIndex:uniq_favorite_user_place;not null"`
	PlaceID string `json:"place" gorm:"type:char(36);uniqueIndex:uniq_favorite_user_place;index;not null"`

	Place *PlaceModel `json:"-" gorm:"foreignKey:PlaceID"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// VisitedPlaceModel records that a user visited a place, with an
// optional note. One row per (user, place).
type VisitedPlaceModel struct {
	Base
	UserID      string   `json:"user"         gorm:"type:char(36);uniqueIndex:uniq_visited_user_place;not null"`
	PlaceID     string   `json:"place"        gorm:"type:char(36);uniqueIndex:uniq_visited_user_place;index;not null"`
	VisitedDate DateOnly `json:"visited_date" gorm:"not null"`
	Notes       string   `json:"notes"        gorm:"type:text"`

	Place *PlaceModel `json:"-" gorm:"foreignKey:PlaceID"`
}

func (VisitedPlaceModel) TableName() string { return "visited_places" }
