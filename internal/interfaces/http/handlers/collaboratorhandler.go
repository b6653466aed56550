package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

// CollaboratorHandler serves collaborator management: owner-driven
// invite and remove, and invite acceptance by the authenticated invitee.
type CollaboratorHandler struct {
	collabUC collaboratorUseCase
	logger   logger.Interface
}

func NewCollaboratorHandler(collabUC collaboratorUseCase, log logger.Interface) *CollaboratorHandler {
	return &CollaboratorHandler{
		collabUC: collabUC,
		logger:   log,
	}
}

type InviteCollaboratorRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Right     string `json:"right" binding:"omitempty,oneof=read write"`
	LedgerID  string `json:"ledgerId"`
}

type RemoveCollaboratorRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type AcceptInviteRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
}

// Invite handles POST /collaborators. Owner only.
func (h *CollaboratorHandler) Invite(c *gin.Context) {
	var req InviteCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for collaborator invite", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "subdomain and email are required")
		return
	}

	cmd := usecases.InviteCollaboratorCommand{
		Subdomain: req.Subdomain,
		OwnerID:   c.GetString("user_id"),
		Email:     req.Email,
		Right:     registry.CollaboratorRight(req.Right),
		LedgerID:  req.LedgerID,
	}

	if err := h.collabUC.Invite(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "collaborator invited", nil)
}

// Accept handles POST /accept-invite. The invitation is matched by the
// caller's verified token email, never by a client-supplied address.
func (h *CollaboratorHandler) Accept(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for invite accept", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "subdomain is required")
		return
	}

	cmd := usecases.AcceptInviteCommand{
		Subdomain: req.Subdomain,
		UserID:    c.GetString("user_id"),
		Email:     c.GetString("email"),
	}

	if err := h.collabUC.Accept(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "invitation accepted", nil)
}

// Remove handles DELETE /collaborators. Owner only.
func (h *CollaboratorHandler) Remove(c *gin.Context) {
	var req RemoveCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for collaborator remove", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "subdomain and email are required")
		return
	}

	cmd := usecases.RemoveCollaboratorCommand{
		Subdomain: req.Subdomain,
		OwnerID:   c.GetString("user_id"),
		Email:     req.Email,
	}

	if err := h.collabUC.Remove(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "collaborator removed", nil)
}
