package routes

import (
	"github.com/gin-gonic/gin"

	"subplane/internal/interfaces/http/handlers"
)

// HealthRouteConfig holds dependencies for health routes.
type HealthRouteConfig struct {
	HealthHandler *handlers.HealthHandler
}

// SetupHealthRoutes configures the liveness endpoint.
func SetupHealthRoutes(engine *gin.Engine, cfg *HealthRouteConfig) {
	engine.GET("/healthz", cfg.HealthHandler.Check)
}
