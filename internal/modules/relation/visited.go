package relation

import (
	"errors"
	"net/http"

	"github.com/binmap-app/core/internal/middleware"
	"github.com/binmap-app/core/internal/models"
	"github.com/binmap-app/core/internal/pkg/response"
	"github.com/binmap-app/core/internal/projection"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateVisitedDTO is the body for both create and toggle. visited_date
// defaults to today, notes to empty.
type CreateVisitedDTO struct {
	Place       string           `json:"place"`
	VisitedDate *models.DateOnly `json:"visited_date"`
	Notes       string           `json:"notes"`
}

type VisitedHandler struct {
	svc *Service
}

func NewVisitedHandler(svc *Service) *VisitedHandler {
	return &VisitedHandler{svc: svc}
}

func (h *VisitedHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	visited := rg.Group("/visited-places", authMW)
	visited.GET("", h.list)
	visited.POST("", h.create)
	visited.POST("/toggle", h.toggle)
	visited.DELETE("/:id", h.delete)
}

func (h *VisitedHandler) list(c *gin.Context) {
	rows, err := h.svc.ListVisited(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.VisitedPlaceDetail, 0, len(rows))
	for i := range rows {
		out = append(out, *projection.FromVisitedPlace(&rows[i]))
	}
	response.OK(c, out)
}

func (h *VisitedHandler) create(c *gin.Context) {
	var dto CreateVisitedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, existed, err := h.svc.CreateVisited(middleware.CurrentUserID(c), dto.Place, dto.VisitedDate, dto.Notes)
	if err != nil {
		relationError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{
			"already_exists": true,
			"data":           projection.FromVisitedPlace(row),
		})
		return
	}
	response.Created(c, projection.FromVisitedPlace(row))
}

func (h *VisitedHandler) toggle(c *gin.Context) {
	var dto CreateVisitedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, removed, err := h.svc.ToggleVisited(middleware.CurrentUserID(c), dto.Place, dto.VisitedDate, dto.Notes)
	if err != nil {
		relationError(c, err)
		return
	}
	if removed {
		c.JSON(http.StatusOK, gin.H{"state": "removed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"state": "added",
		"data":  projection.FromVisitedPlace(row),
	})
}

func (h *VisitedHandler) delete(c *gin.Context) {
	err := h.svc.DeleteVisited(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
