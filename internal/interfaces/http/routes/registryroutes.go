package routes

import (
	"github.com/gin-gonic/gin"

	"subplane/internal/interfaces/http/handlers"
	"subplane/internal/interfaces/http/middleware"
)

// RegistryRouteConfig holds dependencies for the public registry routes.
type RegistryRouteConfig struct {
	RegistryHandler     *handlers.RegistryHandler
	CollaboratorHandler *handlers.CollaboratorHandler
	AuthMiddleware      *middleware.AuthMiddleware
	ClaimRateLimit      gin.HandlerFunc
}

// SetupRegistryRoutes configures the registry surface. Reads are public;
// claims, ledger assignment, and collaborator management require a
// verified bearer token.
func SetupRegistryRoutes(engine *gin.Engine, cfg *RegistryRouteConfig) {
	engine.GET("/registry.json", cfg.RegistryHandler.Snapshot)
	engine.GET("/check/:subdomain", cfg.RegistryHandler.Check)
	engine.GET("/check/:subdomain/access", cfg.RegistryHandler.CheckAccess)
	engine.GET("/resolve/:subdomain", cfg.RegistryHandler.Resolve)

	claim := engine.Group("/claim")
	claim.Use(cfg.AuthMiddleware.RequireAuth())
	if cfg.ClaimRateLimit != nil {
		claim.Use(cfg.ClaimRateLimit)
	}
	claim.POST("", cfg.RegistryHandler.Claim)

	ledger := engine.Group("/set-ledger")
	ledger.Use(cfg.AuthMiddleware.RequireAuth())
	ledger.POST("", cfg.RegistryHandler.SetLedger)

	collab := engine.Group("/collaborators")
	collab.Use(cfg.AuthMiddleware.RequireAuth())
	{
		collab.POST("", cfg.CollaboratorHandler.Invite)
		collab.DELETE("", cfg.CollaboratorHandler.Remove)
	}

	accept := engine.Group("/accept-invite")
	accept.Use(cfg.AuthMiddleware.RequireAuth())
	accept.POST("", cfg.CollaboratorHandler.Accept)
}
