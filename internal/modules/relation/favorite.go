package relation

import (
	"errors"
	"net/http"

	"github.com/binmap-app/core/internal/middleware"
	"github.com/binmap-app/core/internal/pkg/response"
	"github.com/binmap-app/core/internal/projection"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateFavoriteDTO is the body for both create and toggle.
type CreateFavoriteDTO struct {
	Place string `json:"place"`
}

type FavoriteHandler struct {
	svc *Service
}

func NewFavoriteHandler(svc *Service) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// RegisterRoutes mounts the favorites endpoints. Every route requires
// authentication; rows are always scoped to the caller.
func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	favorites := rg.Group("/favorites", authMW)
	favorites.GET("", h.list)
	favorites.POST("", h.create)
	favorites.POST("/toggle", h.toggle)
	favorites.DELETE("/:id", h.delete)
}

func (h *FavoriteHandler) list(c *gin.Context) {
	rows, err := h.svc.ListFavorites(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.FavoriteDetail, 0, len(rows))
	for i := range rows {
		out = append(out, *projection.FromFavorite(&rows[i]))
	}
	response.OK(c, out)
}

func (h *FavoriteHandler) create(c *gin.Context) {
	var dto CreateFavoriteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, existed, err := h.svc.CreateFavorite(middleware.CurrentUserID(c), dto.Place)
	if err != nil {
		relationError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{
			"already_exists": true,
			"data":           projection.FromFavorite(row),
		})
		return
	}
	response.Created(c, projection.FromFavorite(row))
}

func (h *FavoriteHandler) toggle(c *gin.Context) {
	var dto CreateFavoriteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, removed, err := h.svc.ToggleFavorite(middleware.CurrentUserID(c), dto.Place)
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
		"data":  projection.FromFavorite(row),
	})
}

func (h *FavoriteHandler) delete(c *gin.Context) {
	err := h.svc.DeleteFavorite(middleware.CurrentUserID(c), c.Param("id"))
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

// relationError maps the engine's sentinel errors to HTTP responses.
func relationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlaceRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrPlaceNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
