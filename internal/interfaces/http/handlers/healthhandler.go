package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type storePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes with the KV backend's reachability.
type HealthHandler struct {
	store storePinger
}

func NewHealthHandler(store storePinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
