package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/errors"
)

func TestSetLedger_OwnerAssigns(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewSetLedgerUseCase(store, newNopLogger())
	ctx := context.Background()

	require.NoError(t, store.PutSubdomain(ctx, "app", registry.NewSubdomainRecord("u1")))

	err := uc.Execute(ctx, SetLedgerCommand{Subdomain: "App", LedgerID: "ledger-7", UserID: "u1"})
	require.NoError(t, err)

	rec, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "ledger-7", rec.LedgerID)
}

func TestSetLedger_NonOwnerRejected(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewSetLedgerUseCase(store, newNopLogger())
	ctx := context.Background()

	// An active collaborator still may not set the ledger.
	rec := registry.AddCollaborator(registry.NewSubdomainRecord("u1"), "bob@example.com", registry.RightWrite, "")
	rec = registry.ActivateCollaborator(rec, "bob@example.com", "u2")
	require.NoError(t, store.PutSubdomain(ctx, "app", rec))

	err := uc.Execute(ctx, SetLedgerCommand{Subdomain: "app", LedgerID: "ledger-7", UserID: "u2"})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))

	got, err := store.GetSubdomain(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, got.LedgerID)
}

func TestSetLedger_UnknownSubdomain(t *testing.T) {
	store, _ := setupTestStore(t)
	uc := NewSetLedgerUseCase(store, newNopLogger())

	err := uc.Execute(context.Background(), SetLedgerCommand{Subdomain: "missing", LedgerID: "l", UserID: "u1"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
