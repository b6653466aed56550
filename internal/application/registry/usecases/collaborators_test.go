package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/errors"
)

func TestCollaborators_OwnerInvites(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	err := uc.Invite(ctx, InviteCollaboratorCommand{
		Subdomain: "App",
		OwnerID:   "u1",
		Email:     "Bob@Example.com",
		Right:     registry.RightWrite,
		LedgerID:  "collab-ledger",
	})
	require.NoError(t, err)

	rec, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	require.Len(t, rec.Collaborators, 1)
	assert.Equal(t, "bob@example.com", rec.Collaborators[0].Email)
	assert.Equal(t, registry.CollaboratorInvited, rec.Collaborators[0].Status)
	assert.Equal(t, "collab-ledger", rec.Collaborators[0].LedgerID)
}

func TestCollaborators_InviteIsIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	require.NoError(t, uc.Invite(ctx, InviteCollaboratorCommand{Subdomain: "app", OwnerID: "u1", Email: "bob@example.com"}))
	require.NoError(t, uc.Invite(ctx, InviteCollaboratorCommand{Subdomain: "app", OwnerID: "u1", Email: "BOB@example.com"}))

	rec, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	assert.Len(t, rec.Collaborators, 1)
}

func TestCollaborators_NonOwnerCannotInvite(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	err := uc.Invite(ctx, InviteCollaboratorCommand{Subdomain: "app", OwnerID: "u2", Email: "bob@example.com"})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))

	rec, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, rec.Collaborators)
}

func TestCollaborators_AcceptBindsUserID(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	rec := registry.AddCollaborator(registry.NewSubdomainRecord("u1"), "bob@example.com", registry.RightWrite, "")
	require.NoError(t, store.PutSubdomain(ctx, "app", rec))

	err := uc.Accept(ctx, AcceptInviteCommand{Subdomain: "app", UserID: "u2", Email: "Bob@Example.com"})
	require.NoError(t, err)

	got, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	require.Len(t, got.Collaborators, 1)
	assert.Equal(t, registry.CollaboratorActive, got.Collaborators[0].Status)
	assert.Equal(t, "u2", got.Collaborators[0].UserID)
	require.NotNil(t, got.Collaborators[0].JoinedAt)

	// The bound user id now resolves access directly.
	access := registry.HasAccess(got, "u2")
	assert.True(t, access.HasAccess)
	assert.Equal(t, registry.RoleCollaborator, access.Role)
}

func TestCollaborators_AcceptWithoutInvite(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	err := uc.Accept(ctx, AcceptInviteCommand{Subdomain: "app", UserID: "u2", Email: "stranger@example.com"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCollaborators_OwnerRemoves(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	rec := registry.AddCollaborator(registry.NewSubdomainRecord("u1"), "bob@example.com", registry.RightWrite, "")
	require.NoError(t, store.PutSubdomain(ctx, "app", rec))

	err := uc.Remove(ctx, RemoveCollaboratorCommand{Subdomain: "app", OwnerID: "u1", Email: "BOB@example.com"})
	require.NoError(t, err)

	got, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, got.Collaborators)
}

func TestCollaborators_RemoveUnknownEntry(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewCollaboratorUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	err := uc.Remove(ctx, RemoveCollaboratorCommand{Subdomain: "app", OwnerID: "u1", Email: "bob@example.com"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
