package api

import (
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/framedns/internal/api/docs" // swagger docs
	"github.com/jroosing/framedns/internal/api/handlers"
	"github.com/jroosing/framedns/internal/api/middleware"
	"github.com/jroosing/framedns/internal/config"
)

// RegisterRoutes mounts the Swagger UI and the /api/v1 endpoints. /health
// stays public; every other endpoint requires the API key when one is
// configured.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)

	protected := api.Group("")
	if cfg != nil && cfg.API.APIKey != "" {
		protected.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	protected.GET("/stats", h.Stats)
	protected.GET("/config", h.GetConfig)

	protected.GET("/settings", h.ListSettings)
	protected.PUT("/settings/:key", h.PutSetting)
	protected.DELETE("/settings/:key", h.DeleteSetting)
}

// MountStatic serves files from dir at /. Paths under /api are never
// shadowed because registered routes take precedence.
func MountStatic(r *gin.Engine, dir string) {
	r.Use(static.Serve("/", static.LocalFile(dir, false)))
}
