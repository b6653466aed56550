package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

// RegistryHandler serves the public registry surface: availability and
// access queries, claims, ledger assignment, and the legacy aggregate dump.
type RegistryHandler struct {
	checkUC    checkSubdomainUseCase
	resolveUC  resolveAccessUseCase
	claimUC    claimSubdomainUseCase
	setLedgUC  setLedgerUseCase
	snapshotUC legacySnapshotUseCase
	logger     logger.Interface
}

func NewRegistryHandler(
	checkUC checkSubdomainUseCase,
	resolveUC resolveAccessUseCase,
	claimUC claimSubdomainUseCase,
	setLedgUC setLedgerUseCase,
	snapshotUC legacySnapshotUseCase,
	log logger.Interface,
) *RegistryHandler {
	return &RegistryHandler{
		checkUC:    checkUC,
		resolveUC:  resolveUC,
		claimUC:    claimUC,
		setLedgUC:  setLedgUC,
		snapshotUC: snapshotUC,
		logger:     log,
	}
}

type ClaimRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
}

type SetLedgerRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
	LedgerID  string `json:"ledgerId"`
}

// Check handles GET /check/:subdomain.
func (h *RegistryHandler) Check(c *gin.Context) {
	availability, err := h.checkUC.Execute(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		h.logger.Errorw("availability check failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// CheckAccess handles GET /check/:subdomain/access?userId=.
func (h *RegistryHandler) CheckAccess(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	access, err := h.checkUC.ExecuteAccess(c.Request.Context(), c.Param("subdomain"), userID)
	if err != nil {
		h.logger.Errorw("access check failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

// Resolve handles GET /resolve/:subdomain?userId=&email=.
func (h *RegistryHandler) Resolve(c *gin.Context) {
	resolution, err := h.resolveUC.Execute(
		c.Request.Context(),
		c.Param("subdomain"),
		c.Query("userId"),
		c.Query("email"),
	)
	if err != nil {
		h.logger.Errorw("role resolution failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

// Claim handles POST /claim. The auth middleware has already placed the
// verified identity in the context.
func (h *RegistryHandler) Claim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for claim", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "subdomain is required")
		return
	}

	cmd := usecases.ClaimCommand{
		Subdomain: req.Subdomain,
		UserID:    c.GetString("user_id"),
		Plan:      c.GetString("plan"),
		Admin:     c.GetBool("is_admin"),
	}

	result, err := h.claimUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("claim failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Denied != nil {
		c.JSON(result.Denied.Code, denialBody(result.Denied))
		return
	}

	c.JSON(http.StatusCreated, result.Record)
}

// SetLedger handles POST /set-ledger. Owner only.
func (h *RegistryHandler) SetLedger(c *gin.Context) {
	var req SetLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set-ledger", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "subdomain is required")
		return
	}

	cmd := usecases.SetLedgerCommand{
		Subdomain: req.Subdomain,
		LedgerID:  req.LedgerID,
		UserID:    c.GetString("user_id"),
	}

	if err := h.setLedgUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ledger assigned", nil)
}

// Snapshot handles GET /registry.json, the backward-compatible aggregate.
func (h *RegistryHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.snapshotUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("legacy snapshot failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// denialBody shapes a claim denial for the wire. Availability denials keep
// the check-endpoint shape; policy denials carry the quota context.
func denialBody(denied *usecases.ClaimDenial) gin.H {
	switch denied.Reason {
	case usecases.DenialReasonNoSubscription:
		return gin.H{"reason": denied.Reason}
	case usecases.DenialReasonQuotaExceeded:
		return gin.H{
			"reason":  denied.Reason,
			"current": denied.Current,
			"limit":   denied.Limit,
		}
	}

	body := gin.H{"available": false, "reason": denied.Reason}
	if denied.OwnerID != "" {
		body["ownerId"] = denied.OwnerID
	}
	return body
}
