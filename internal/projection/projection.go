// Package projection builds the read documents served by the API.
// Every shape is a statically declared struct; related entities are
// embedded to a fixed depth so serialization always terminates.
//
// Place has exactly two shapes: the full one (municipality, category
// and a route summary) and the flat one used inside a route detail.
// The split breaks the Place↔Route mutual reference.
package projection

import "github.com/binmap-app/core/internal/models"

type State struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Municipality embeds its state (flat).
type Municipality struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       *State `json:"state"`
}

// MunicipalityFlat is the embed-free municipality shape used inside a
// route detail, which stops at the state id.
type MunicipalityFlat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StateID     string `json:"state_id"`
}

// RouteSummary is the route shape embedded in a full place. It carries
// no places of its own.
type RouteSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// Place is the full standalone place document.
type Place struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Image        string        `json:"image"`
	Video        string        `json:"video"`
	Municipality *Municipality `json:"municipality"`
	Category     *Category     `json:"category"`
	Route        *RouteSummary `json:"route"`
}

// PlaceFlat is the embed-free place shape used inside a route detail.
type PlaceFlat struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Image          string  `json:"image"`
	Video          string  `json:"video"`
	MunicipalityID string  `json:"municipality_id"`
	CategoryID     string  `json:"category_id"`
	RouteID        string  `json:"route_id"`
}

// Route is the full route document: flat places, flat municipalities.
type Route struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Duration       string             `json:"duration"`
	Places         []PlaceFlat        `json:"places"`
	Municipalities []MunicipalityFlat `json:"municipalities"`
}

// MunicipalityRoute is the link document between a municipality and a
// route.
type MunicipalityRoute struct {
	ID           string        `json:"id"`
	Municipality *Municipality `json:"municipality"`
	Route        *RouteSummary `json:"route"`
}

// FavoriteDetail embeds the full place and references the owner by id.
type FavoriteDetail struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Place *Place `json:"place"`
}

// VisitedPlaceDetail embeds the full place and the visit metadata.
type VisitedPlaceDetail struct {
	ID          string          `json:"id"`
	User        string          `json:"user"`
	Place       *Place          `json:"place"`
	VisitedDate models.DateOnly `json:"visited_date"`
	Notes       string          `json:"notes"`
}

func FromState(m *models.StateModel) *State {
	if m == nil {
		return nil
	}
	return &State{ID: m.ID, Name: m.Name, Description: m.Description}
}

func FromCategory(m *models.CategoryModel) *Category {
	if m == nil {
		return nil
	}
	return &Category{ID: m.ID, Name: m.Name, Description: m.Description}
}

func FromMunicipality(m *models.MunicipalityModel) *Municipality {
	if m == nil {
		return nil
	}
	return &Municipality{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		State:       FromState(m.State),
	}
}

func FromMunicipalityFlat(m *models.MunicipalityModel) MunicipalityFlat {
	return MunicipalityFlat{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		StateID:     m.StateID,
	}
}

func RouteSummaryOf(m *models.RouteModel) *RouteSummary {
	if m == nil {
		return nil
	}
	return &RouteSummary{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Duration:    m.Duration,
	}
}

// FromPlace builds the full place shape. The model must have its
// Municipality (with State), Category and Route associations loaded.
func FromPlace(m *models.PlaceModel) *Place {
	if m == nil {
		return nil
	}
	return &Place{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		Image:        m.Image,
		Video:        m.Video,
		Municipality: FromMunicipality(m.Municipality),
		Category:     FromCategory(m.Category),
		Route:        RouteSummaryOf(m.Route),
	}
}

func FromPlaceFlat(m *models.PlaceModel) PlaceFlat {
	return PlaceFlat{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		Image:          m.Image,
		Video:          m.Video,
		MunicipalityID: m.MunicipalityID,
		CategoryID:     m.CategoryID,
		RouteID:        m.RouteID,
	}
}

// FromRoute builds the route detail shape from a route, its places and
// its municipality links (links must have Municipality loaded). Both
// lists use the flat shapes: the route document never recurses into a
// place's route or a municipality's state.
func FromRoute(m *models.RouteModel, links []models.MunicipalityRouteModel) *Route {
	if m == nil {
		return nil
	}
	places := make([]PlaceFlat, 0, len(m.Places))
	for i := range m.Places {
		places = append(places, FromPlaceFlat(&m.Places[i]))
	}
	municipalities := make([]MunicipalityFlat, 0, len(links))
	for i := range links {
		if links[i].Municipality != nil {
			municipalities = append(municipalities, FromMunicipalityFlat(links[i].Municipality))
		}
	}
	return &Route{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Duration:       m.Duration,
		Places:         places,
		Municipalities: municipalities,
	}
}

// FromMunicipalityRoute builds the link shape. The model must have its
// Municipality (with State) and Route associations loaded.
func FromMunicipalityRoute(m *models.MunicipalityRouteModel) *MunicipalityRoute {
	if m == nil {
		return nil
	}
	return &MunicipalityRoute{
		ID:           m.ID,
		Municipality: FromMunicipality(m.Municipality),
		Route:        RouteSummaryOf(m.Route),
	}
}

func FromFavorite(m *models.FavoriteModel) *FavoriteDetail {
	if m == nil {
		return nil
	}
	return &FavoriteDetail{
		ID:    m.ID,
		User:  m.UserID,
		Place: FromPlace(m.Place),
	}
}

func FromVisitedPlace(m *models.VisitedPlaceModel) *VisitedPlaceDetail {
	if m == nil {
		return nil
	}
	return &VisitedPlaceDetail{
		ID:          m.ID,
		User:        m.UserID,
		Place:       FromPlace(m.Place),
		VisitedDate: m.VisitedDate,
		Notes:       m.Notes,
	}
}
