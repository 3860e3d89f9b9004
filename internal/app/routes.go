package app

import (
	"net/http"

	"github.com/binmap-app/core/internal/middleware"
	"github.com/binmap-app/core/internal/modules/auth"
	"github.com/binmap-app/core/internal/modules/catalog/category"
	"github.com/binmap-app/core/internal/modules/catalog/municipality"
	"github.com/binmap-app/core/internal/modules/catalog/place"
	"github.com/binmap-app/core/internal/modules/catalog/route"
	"github.com/binmap-app/core/internal/modules/catalog/state"
	"github.com/binmap-app/core/internal/modules/relation"
	pkgredis "github.com/binmap-app/core/internal/pkg/redis"
	"github.com/binmap-app/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	// Auth & User
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)

	// Catalog. Reads are open, writes require a staff account.
	writeMW := []gin.HandlerFunc{authMW, middleware.RequireStaff(db)}
	state.NewHandler(state.NewService(db)).RegisterRoutes(api, writeMW...)
	municipality.NewHandler(municipality.NewService(db)).RegisterRoutes(api, writeMW...)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, writeMW...)
	place.NewHandler(place.NewService(db)).RegisterRoutes(api, writeMW...)
	route.NewHandler(route.NewService(db)).RegisterRoutes(api, writeMW...)

	// Relations. Any authenticated user, always scoped to the caller.
	relSvc := relation.NewService(db)
	relation.NewFavoriteHandler(relSvc).RegisterRoutes(api, authMW)
	relation.NewVisitedHandler(relSvc).RegisterRoutes(api, authMW)
}
