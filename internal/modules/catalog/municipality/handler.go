package municipality

import (
	"errors"

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
	municipalities := rg.Group("/municipalities")
	municipalities.GET("", h.list)
	municipalities.GET("/:id", h.get)

	writes := municipalities.Group("", writeMW...)
	writes.POST("", h.create)
	writes.PUT("/:id", h.update)
	writes.PATCH("/:id", h.update)
	writes.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	municipalities, err := h.svc.List(c.Query("search"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.Municipality, 0, len(municipalities))
	for i := range municipalities {
		out = append(out, *projection.FromMunicipality(&municipalities[i]))
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromMunicipality(m))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateMunicipalityDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errStateNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, projection.FromMunicipality(m))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateMunicipalityDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errStateNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromMunicipality(m))
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
