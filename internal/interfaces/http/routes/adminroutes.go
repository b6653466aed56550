package routes

import (
	"github.com/gin-gonic/gin"

	"subplane/internal/interfaces/http/handlers"
	"subplane/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdminRoutes configures the admin surface: bearer auth plus the
// admin allow-list on every route.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("/quotas", cfg.AdminHandler.SetQuotaOverride)
		admin.DELETE("/subdomains/:subdomain", cfg.AdminHandler.ReleaseSubdomain)
		admin.GET("/token", cfg.AdminHandler.InspectToken)
	}
}
