// Package http wires the gin engine: middleware, use cases, handlers, and
// routes. Construction is pure dependency assembly; no request logic lives
// here.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/infrastructure/auth"
	"subplane/internal/infrastructure/config"
	"subplane/internal/infrastructure/kv"
	"subplane/internal/infrastructure/ratelimit"
	"subplane/internal/interfaces/http/handlers"
	"subplane/internal/interfaces/http/middleware"
	"subplane/internal/interfaces/http/routes"
	"subplane/internal/shared/logger"
)

// Router owns the configured gin engine.
type Router struct {
	engine *gin.Engine
}

// NewRouter assembles the full HTTP surface from infrastructure pieces.
func NewRouter(
	cfg *config.Config,
	store *kv.Store,
	redisClient *redis.Client,
	tokenVerifier *auth.TokenVerifier,
	webhookVerifier *auth.WebhookVerifier,
	log logger.Interface,
) *Router {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Auth.PermittedOrigins))

	checkUC := usecases.NewCheckSubdomainUseCase(store, cfg.Registry.ReservedNames, log)
	resolveUC := usecases.NewResolveAccessUseCase(store, log)
	claimUC := usecases.NewClaimSubdomainUseCase(
		store,
		cfg.Registry.ReservedNames,
		cfg.Billing.Enabled(),
		cfg.Billing.PlanQuotas,
		log,
	)
	setLedgerUC := usecases.NewSetLedgerUseCase(store, log)
	collaboratorUC := usecases.NewCollaboratorUseCase(store, log)
	snapshotUC := usecases.NewGetLegacySnapshotUseCase(store)
	processWebhookUC := usecases.NewProcessWebhookUseCase(store, log)
	quotaOverrideUC := usecases.NewSetQuotaOverrideUseCase(store, log)
	releaseUC := usecases.NewReleaseSubdomainUseCase(store, log)

	authMW := middleware.NewAuthMiddleware(tokenVerifier, cfg.Auth.AdminUserIDs, log)

	var claimRateLimit gin.HandlerFunc
	if cfg.RateLimit.ClaimPerMinute > 0 {
		limiter := ratelimit.NewRedisRateLimiter(redisClient, "ratelimit:claim:", cfg.RateLimit.ClaimPerMinute, time.Minute)
		claimRateLimit = middleware.RateLimit(limiter, log)
	}

	registryHandler := handlers.NewRegistryHandler(checkUC, resolveUC, claimUC, setLedgerUC, snapshotUC, log)
	collaboratorHandler := handlers.NewCollaboratorHandler(collaboratorUC, log)
	adminHandler := handlers.NewAdminHandler(quotaOverrideUC, releaseUC, tokenVerifier, log)
	healthHandler := handlers.NewHealthHandler(store)

	routes.SetupHealthRoutes(engine, &routes.HealthRouteConfig{
		HealthHandler: healthHandler,
	})
	routes.SetupRegistryRoutes(engine, &routes.RegistryRouteConfig{
		RegistryHandler:     registryHandler,
		CollaboratorHandler: collaboratorHandler,
		AuthMiddleware:      authMW,
		ClaimRateLimit:      claimRateLimit,
	})
	// The webhook endpoint is mounted only when a signing secret is
	// configured.
	if webhookVerifier != nil {
		webhookHandler := handlers.NewWebhookHandler(webhookVerifier, processWebhookUC, log)
		routes.SetupWebhookRoutes(engine, &routes.WebhookRouteConfig{
			WebhookHandler: webhookHandler,
		})
	}
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		AdminHandler:   adminHandler,
		AuthMiddleware: authMW,
	})

	return &Router{engine: engine}
}

// Engine returns the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
