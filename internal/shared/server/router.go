package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/shared/config"
	"atscheck-backend/internal/shared/metrics"
	"atscheck-backend/internal/shared/server/middleware"
)

// RouteRegistrar mounts a feature's routes on a router group.
type RouteRegistrar interface {
	Register(rg *gin.RouterGroup)
}

// NewRouter builds the gin engine with the standard middleware chain and
// mounts the given feature handlers under /api/v1. Health and metrics stay
// outside the identity requirement.
func NewRouter(cfg config.Config, handlers ...RouteRegistrar) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Identity())
	for _, h := range handlers {
		h.Register(api)
	}

	return r
}
