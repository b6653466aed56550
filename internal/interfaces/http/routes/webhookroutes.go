package routes

import (
	"github.com/gin-gonic/gin"

	"subplane/internal/interfaces/http/handlers"
)

// WebhookRouteConfig holds dependencies for webhook routes.
type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupWebhookRoutes configures the billing webhook endpoint. Signature
// verification happens inside the handler; no bearer auth applies.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	engine.POST("/webhook", cfg.WebhookHandler.Handle)
}
