package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/interfaces/http/handlers/testutil"
	"subplane/internal/shared/errors"
)

type mockCollaboratorUC struct {
	inviteErr  error
	acceptErr  error
	removeErr  error
	lastInvite usecases.InviteCollaboratorCommand
	lastAccept usecases.AcceptInviteCommand
	lastRemove usecases.RemoveCollaboratorCommand
}

func (m *mockCollaboratorUC) Invite(ctx context.Context, cmd usecases.InviteCollaboratorCommand) error {
	m.lastInvite = cmd
	return m.inviteErr
}

func (m *mockCollaboratorUC) Accept(ctx context.Context, cmd usecases.AcceptInviteCommand) error {
	m.lastAccept = cmd
	return m.acceptErr
}

func (m *mockCollaboratorUC) Remove(ctx context.Context, cmd usecases.RemoveCollaboratorCommand) error {
	m.lastRemove = cmd
	return m.removeErr
}

func TestCollaboratorHandler_Invite(t *testing.T) {
	mockUC := &mockCollaboratorUC{}
	handler := NewCollaboratorHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/collaborators", InviteCollaboratorRequest{
		Subdomain: "myapp",
		Email:     "bob@example.com",
		Right:     "write",
		LedgerID:  "collab-ledger",
	})
	testutil.SetAuthContext(c, "u1", "pro", "owner@example.com")

	handler.Invite(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", mockUC.lastInvite.OwnerID)
	assert.Equal(t, "bob@example.com", mockUC.lastInvite.Email)
}

func TestCollaboratorHandler_Invite_MissingEmail(t *testing.T) {
	handler := NewCollaboratorHandler(&mockCollaboratorUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/collaborators", map[string]string{"subdomain": "myapp"})
	testutil.SetAuthContext(c, "u1", "pro", "owner@example.com")

	handler.Invite(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollaboratorHandler_Invite_NonOwner(t *testing.T) {
	mockUC := &mockCollaboratorUC{inviteErr: errors.NewUnauthorizedError("unauthorized")}
	handler := NewCollaboratorHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/collaborators", InviteCollaboratorRequest{
		Subdomain: "myapp",
		Email:     "bob@example.com",
	})
	testutil.SetAuthContext(c, "u2", "pro", "other@example.com")

	handler.Invite(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCollaboratorHandler_Accept_UsesTokenEmail(t *testing.T) {
	mockUC := &mockCollaboratorUC{}
	handler := NewCollaboratorHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/accept-invite", AcceptInviteRequest{Subdomain: "myapp"})
	testutil.SetAuthContext(c, "u2", "free", "bob@example.com")

	handler.Accept(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u2", mockUC.lastAccept.UserID)
	assert.Equal(t, "bob@example.com", mockUC.lastAccept.Email)
}

func TestCollaboratorHandler_Accept_NoInvite(t *testing.T) {
	mockUC := &mockCollaboratorUC{acceptErr: errors.NewNotFoundError("no invitation found for this account")}
	handler := NewCollaboratorHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/accept-invite", AcceptInviteRequest{Subdomain: "myapp"})
	testutil.SetAuthContext(c, "u2", "free", "stranger@example.com")

	handler.Accept(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollaboratorHandler_Remove(t *testing.T) {
	mockUC := &mockCollaboratorUC{}
	handler := NewCollaboratorHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/collaborators", RemoveCollaboratorRequest{
		Subdomain: "myapp",
		Email:     "bob@example.com",
	})
	testutil.SetAuthContext(c, "u1", "pro", "owner@example.com")

	handler.Remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", mockUC.lastRemove.OwnerID)
	assert.Equal(t, "bob@example.com", mockUC.lastRemove.Email)
}
