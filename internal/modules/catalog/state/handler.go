package state

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
	states := rg.Group("/states")
	states.GET("", h.list)
	states.GET("/:id", h.get)

	writes := states.Group("", writeMW...)
	writes.POST("", h.create)
	writes.PUT("/:id", h.update)
	writes.PATCH("/:id", h.update)
	writes.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	states, err := h.svc.List(c.Query("search"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.State, 0, len(states))
	for i := range states {
		out = append(out, *projection.FromState(&states[i]))
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	st, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if st == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromState(st))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateStateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, projection.FromState(st))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateStateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if st == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromState(st))
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
