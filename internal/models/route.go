package models

// RouteModel is a tourist route. Places reference it one-to-many;
// municipalities are associated through MunicipalityRouteModel.
type RouteModel struct {
	Base
	Name        string `json:"name"        gorm:"size:50;not null"`
	Description string `json:"description" gorm:"type:text"`
	// Duration keeps the original HH:MM:SS wire format.
	Duration string `json:"duration" gorm:"type:time;not null"`

	Places []PlaceModel `json:"places,omitempty" gorm:"foreignKey:RouteID"`
}

func (RouteModel) TableName() string { return "routes" }

// MunicipalityRouteModel pairs a municipality with a route.
// The (municipality, route) pair is unique.
type MunicipalityRouteModel struct {
	Base
	MunicipalityID string `json:"municipality_id" gorm:"type:char(36);uniqueIndex:uniq_municipality_route;not null"`
	RouteID        string `json:"route_id"        gorm:"type:char(36);uniqueIndex:uniq_municipality_route;index;not null"`

	Municipality *MunicipalityModel `json:"municipality,omitempty" gorm:"foreignKey:MunicipalityID"`
	Route        *RouteModel        `json:"route,omitempty"        gorm:"foreignKey:RouteID"`
}

func (MunicipalityRouteModel) TableName() string { return "municipality_routes" }
