package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/infrastructure/auth"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

type setQuotaOverrideUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetQuotaOverrideCommand) error
}

type releaseSubdomainUseCase interface {
	Execute(ctx context.Context, name string) error
}

type tokenInspector interface {
	Inspect(tokenString string) (*auth.TokenDiagnostics, error)
}

// AdminHandler serves the allow-listed admin surface: quota overrides,
// subdomain release, and token diagnostics.
type AdminHandler struct {
	quotaUC   setQuotaOverrideUseCase
	releaseUC releaseSubdomainUseCase
	inspector tokenInspector
	logger    logger.Interface
}

func NewAdminHandler(
	quotaUC setQuotaOverrideUseCase,
	releaseUC releaseSubdomainUseCase,
	inspector tokenInspector,
	log logger.Interface,
) *AdminHandler {
	return &AdminHandler{
		quotaUC:   quotaUC,
		releaseUC: releaseUC,
		inspector: inspector,
		logger:    log,
	}
}

type SetQuotaOverrideRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Enabled bool   `json:"enabled"`
}

// SetQuotaOverride handles POST /admin/quotas.
func (h *AdminHandler) SetQuotaOverride(c *gin.Context) {
	var req SetQuotaOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for quota override", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "userId is required")
		return
	}

	cmd := usecases.SetQuotaOverrideCommand{
		UserID:  req.UserID,
		Enabled: req.Enabled,
	}
	if err := h.quotaUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "quota override updated", nil)
}

// ReleaseSubdomain handles DELETE /admin/subdomains/:subdomain.
func (h *AdminHandler) ReleaseSubdomain(c *gin.Context) {
	if err := h.releaseUC.Execute(c.Request.Context(), c.Param("subdomain")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subdomain released", nil)
}

// InspectToken handles GET /admin/token: it decodes the presented bearer
// token and reports both the raw payload and the verification outcome.
// Verification is not loosened; the caller already passed RequireAuth.
func (h *AdminHandler) InspectToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing bearer token")
		return
	}

	diagnostics, err := h.inspector.Inspect(parts[1])
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed token")
		return
	}

	c.JSON(http.StatusOK, diagnostics)
}
