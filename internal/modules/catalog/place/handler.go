package place

import (
	"errors"

	"github.com/binmap-app/core/internal/pkg/pagination"
	"github.com/binmap-app/core/internal/pkg/response"
	"github.com/binmap-app/core/internal/projection"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, writeMW ...gin.HandlerFunc) {
	places := rg.Group("/places")
	places.GET("", h.list)
	places.GET("/:id", h.get)

	writes := places.Group("", writeMW...)
	writes.POST("", h.create)
	writes.PUT("/:id", h.update)
	writes.PATCH("/:id", h.update)
	writes.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	places, page, err := h.svc.List(c.Query("search"), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.Place, 0, len(places))
	for i := range places {
		out = append(out, *projection.FromPlace(&places[i]))
	}
	response.Paged(c, out, page)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromPlace(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePlaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		if IsBadReference(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, projection.FromPlace(p))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePlaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if IsBadReference(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromPlace(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
