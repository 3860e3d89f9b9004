package route

import (
	"errors"

	"github.com/binmap-app/core/internal/models"
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
	routes := rg.Group("/routes")
	routes.GET("", h.list)
	routes.GET("/:id", h.get)

	routeWrites := routes.Group("", writeMW...)
	routeWrites.POST("", h.create)
	routeWrites.PUT("/:id", h.update)
	routeWrites.PATCH("/:id", h.update)
	routeWrites.DELETE("/:id", h.delete)

	links := rg.Group("/municipality-routes")
	links.GET("", h.listLinks)
	links.GET("/:id", h.getLink)

	linkWrites := links.Group("", writeMW...)
	linkWrites.POST("", h.createLink)
	linkWrites.DELETE("/:id", h.deleteLink)
}

func (h *Handler) list(c *gin.Context) {
	routes, err := h.svc.List(c.Query("search"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.Route, 0, len(routes))
	for i := range routes {
		doc, err := h.detail(&routes[i])
		if err != nil {
			response.InternalError(c, err)
			return
		}
		out = append(out, *doc)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	r, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if r == nil {
		response.NotFound(c)
		return
	}
	doc, err := h.detail(r)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateRouteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errBadDuration) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	doc, err := h.detail(r)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateRouteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errBadDuration) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if r == nil {
		response.NotFound(c)
		return
	}
	doc, err := h.detail(r)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
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

func (h *Handler) listLinks(c *gin.Context) {
	links, err := h.svc.ListLinks()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projection.MunicipalityRoute, 0, len(links))
	for i := range links {
		out = append(out, *projection.FromMunicipalityRoute(&links[i]))
	}
	response.OK(c, out)
}

func (h *Handler) getLink(c *gin.Context) {
	link, err := h.svc.GetLink(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if link == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, projection.FromMunicipalityRoute(link))
}

func (h *Handler) createLink(c *gin.Context) {
	var dto CreateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	link, err := h.svc.CreateLink(&dto)
	if err != nil {
		switch {
		case errors.Is(err, errMunicipalityNotFound), errors.Is(err, errRouteNotFound):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errLinkExists):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, projection.FromMunicipalityRoute(link))
}

func (h *Handler) deleteLink(c *gin.Context) {
	if err := h.svc.DeleteLink(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) detail(r *models.RouteModel) (*projection.Route, error) {
	links, err := h.svc.LinksForRoute(r.ID)
	if err != nil {
		return nil, err
	}
	return projection.FromRoute(r, links), nil
}
