package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

type webhookSignatureVerifier interface {
	Verify(headers http.Header, body []byte) error
}

type processWebhookUseCase interface {
	Execute(ctx context.Context, event usecases.SubscriptionEvent) (*usecases.WebhookResult, error)
}

// WebhookHandler receives billing provider events. The signature is the
// only authentication; once it checks out, the handler answers 200 no
// matter what the payload asks for, so the provider never retries events
// we have consciously ignored.
type WebhookHandler struct {
	verifier  webhookSignatureVerifier
	processUC processWebhookUseCase
	logger    logger.Interface
}

func NewWebhookHandler(verifier webhookSignatureVerifier, processUC processWebhookUseCase, log logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		processUC: processUC,
		logger:    log,
	}
}

// Handle handles POST /webhook.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.verifier.Verify(c.Request.Header, body); err != nil {
		h.logger.Warnw("webhook signature rejected", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event usecases.SubscriptionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// Signed but unparseable: acknowledge so the provider stops
		// redelivering a payload we will never understand.
		h.logger.Warnw("unparseable webhook payload", "error", err)
		c.JSON(http.StatusOK, usecases.WebhookResult{Action: "ignored"})
		return
	}

	result, err := h.processUC.Execute(c.Request.Context(), event)
	if err != nil {
		h.logger.Errorw("webhook processing failed", "error", err, "type", event.Type)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
