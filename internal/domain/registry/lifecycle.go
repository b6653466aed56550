package registry

import "subplane/internal/shared/biztime"

// NewSubdomainRecord builds the record persisted on a successful claim.
func NewSubdomainRecord(ownerID string) *SubdomainRecord {
	return &SubdomainRecord{
		OwnerID:       ownerID,
		ClaimedAt:     biztime.NowUTC(),
		Collaborators: []Collaborator{},
		Status:        StatusActive,
	}
}

// Freeze returns a frozen copy of the record. Freezing an already-frozen
// record is a no-op that returns the input unchanged, preserving the
// original FrozenAt; this makes duplicate or reordered webhook deliveries
// safe.
func Freeze(rec *SubdomainRecord) *SubdomainRecord {
	if rec.Status == StatusFrozen {
		return rec
	}
	frozen := *rec
	frozen.Status = StatusFrozen
	now := biztime.NowUTC()
	frozen.FrozenAt = &now
	return &frozen
}

// Unfreeze returns an active copy of the record with FrozenAt cleared.
// Unfreezing an active record is a no-op.
func Unfreeze(rec *SubdomainRecord) *SubdomainRecord {
	if rec.Status != StatusFrozen {
		return rec
	}
	active := *rec
	active.Status = StatusActive
	active.FrozenAt = nil
	return &active
}
