package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubdomainRecord(t *testing.T) {
	rec := NewSubdomainRecord("u1")

	assert.Equal(t, "u1", rec.OwnerID)
	assert.Equal(t, StatusActive, rec.Status)
	assert.NotNil(t, rec.Collaborators)
	assert.Empty(t, rec.Collaborators)
	assert.False(t, rec.ClaimedAt.IsZero())
	assert.Nil(t, rec.FrozenAt)
}

func TestFreeze(t *testing.T) {
	rec := NewSubdomainRecord("u1")

	frozen := Freeze(rec)

	require.NotSame(t, rec, frozen)
	assert.Equal(t, StatusFrozen, frozen.Status)
	require.NotNil(t, frozen.FrozenAt)
	// Input untouched.
	assert.Equal(t, StatusActive, rec.Status)
	assert.Nil(t, rec.FrozenAt)
}

func TestFreeze_AlreadyFrozenIsNoOp(t *testing.T) {
	frozen := Freeze(NewSubdomainRecord("u1"))
	firstFrozenAt := frozen.FrozenAt

	again := Freeze(frozen)

	assert.Same(t, frozen, again)
	assert.Equal(t, firstFrozenAt, again.FrozenAt)
}

func TestUnfreeze(t *testing.T) {
	frozen := Freeze(NewSubdomainRecord("u1"))

	active := Unfreeze(frozen)

	require.NotSame(t, frozen, active)
	assert.Equal(t, StatusActive, active.Status)
	assert.Nil(t, active.FrozenAt)
	// Frozen copy untouched.
	assert.Equal(t, StatusFrozen, frozen.Status)
}

func TestUnfreeze_ActiveIsNoOp(t *testing.T) {
	rec := NewSubdomainRecord("u1")
	assert.Same(t, rec, Unfreeze(rec))
}

func TestNormalize_LegacyShapes(t *testing.T) {
	rec := &SubdomainRecord{OwnerID: "u1"}

	rec.Normalize()

	assert.Equal(t, StatusActive, rec.Status)
	assert.NotNil(t, rec.Collaborators)
	assert.Empty(t, rec.Collaborators)
}

func TestNormalize_PreservesExistingFields(t *testing.T) {
	frozen := Freeze(NewSubdomainRecord("u1"))

	frozen.Normalize()

	assert.Equal(t, StatusFrozen, frozen.Status)
	assert.NotNil(t, frozen.FrozenAt)
}
