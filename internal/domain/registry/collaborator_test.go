package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCollaborator(t *testing.T) {
	rec := NewSubdomainRecord("u1")

	updated := AddCollaborator(rec, "Bob@Example.com", "", "")

	require.NotSame(t, rec, updated)
	require.Len(t, updated.Collaborators, 1)
	collab := updated.Collaborators[0]
	assert.Equal(t, "bob@example.com", collab.Email)
	assert.Equal(t, RightWrite, collab.Right)
	assert.Equal(t, CollaboratorInvited, collab.Status)
	assert.Empty(t, collab.UserID)
	assert.Nil(t, collab.JoinedAt)
	assert.False(t, collab.InvitedAt.IsZero())

	// Input untouched.
	assert.Empty(t, rec.Collaborators)
}

func TestAddCollaborator_DuplicateEmailReturnsSameReference(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "bob@example.com", RightWrite, "")

	again := AddCollaborator(rec, "BOB@example.com", RightRead, "")

	assert.Same(t, rec, again)
	assert.Len(t, again.Collaborators, 1)
}

func TestAddCollaborator_ExplicitRightAndLedger(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "carol@example.com", RightRead, "ledger-7")

	require.Len(t, rec.Collaborators, 1)
	assert.Equal(t, RightRead, rec.Collaborators[0].Right)
	assert.Equal(t, "ledger-7", rec.Collaborators[0].LedgerID)
}

func TestActivateCollaborator(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "Bob@Example.com", RightWrite, "")

	updated := ActivateCollaborator(rec, "bob@example.com", "u2")

	require.NotSame(t, rec, updated)
	collab := updated.Collaborators[0]
	assert.Equal(t, CollaboratorActive, collab.Status)
	assert.Equal(t, "u2", collab.UserID)
	require.NotNil(t, collab.JoinedAt)

	// Original record untouched.
	assert.Equal(t, CollaboratorInvited, rec.Collaborators[0].Status)
}

func TestActivateCollaborator_NoMatchIsNoOp(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "bob@example.com", RightWrite, "")

	assert.Same(t, rec, ActivateCollaborator(rec, "dave@example.com", "u9"))
}

func TestActivateCollaborator_OtherEntriesUntouched(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "bob@example.com", RightWrite, "")
	rec = AddCollaborator(rec, "carol@example.com", RightRead, "")

	updated := ActivateCollaborator(rec, "carol@example.com", "u3")

	assert.Equal(t, CollaboratorInvited, updated.Collaborators[0].Status)
	assert.Equal(t, CollaboratorActive, updated.Collaborators[1].Status)
}

func TestRemoveCollaborator(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "bob@example.com", RightWrite, "")

	updated := RemoveCollaborator(rec, "BOB@EXAMPLE.COM")

	require.NotSame(t, rec, updated)
	assert.Empty(t, updated.Collaborators)
	assert.Len(t, rec.Collaborators, 1)
}

func TestRemoveCollaborator_NoMatchIsNoOp(t *testing.T) {
	rec := AddCollaborator(NewSubdomainRecord("u1"), "bob@example.com", RightWrite, "")

	assert.Same(t, rec, RemoveCollaborator(rec, "carol@example.com"))
}
