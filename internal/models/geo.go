package models

// StateModel represents a federal state.
type StateModel struct {
	Base
	Name        string `json:"name"        gorm:"size:35;not null"`
	Description string `json:"description" gorm:"type:text"`

	Municipalities []MunicipalityModel `json:"municipalities,omitempty" gorm:"foreignKey:StateID"`
}

func (StateModel) TableName() string { return "states" }

// MunicipalityModel represents a municipality inside a state.
type MunicipalityModel struct {
	Base
	Name        string `json:"name"        gorm:"size:35;not null"`
	Description string `json:"description" gorm:"type:text"`
	StateID     string `json:"state_id"    gorm:"type:char(36);index;not null"`

	State *StateModel `json:"state,omitempty" gorm:"foreignKey:StateID"`
}

func (MunicipalityModel) TableName() string { return "municipalities" }

// CategoryModel classifies places (beach, museum, gastronomy, ...).
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"size:50;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (CategoryModel) TableName() string { return "categories" }
