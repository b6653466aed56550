package registry

import "subplane/internal/shared/biztime"

// AddCollaborator returns a copy of the record with a new invited
// collaborator appended. Idempotent by normalized email: if an entry
// already exists the input record is returned unchanged (same pointer),
// so callers can detect the no-op.
func AddCollaborator(rec *SubdomainRecord, email string, right CollaboratorRight, ledgerID string) *SubdomainRecord {
	normalized := NormalizeEmail(email)
	for _, collab := range rec.Collaborators {
		if NormalizeEmail(collab.Email) == normalized {
			return rec
		}
	}

	if right == "" {
		right = RightWrite
	}

	updated := *rec
	updated.Collaborators = append(append([]Collaborator{}, rec.Collaborators...), Collaborator{
		Email:     normalized,
		Right:     right,
		Status:    CollaboratorInvited,
		InvitedAt: biztime.NowUTC(),
		LedgerID:  ledgerID,
	})
	return &updated
}

// ActivateCollaborator marks the collaborator matching email (case
// insensitive) as active, binding the authenticated user id and setting
// JoinedAt. Non-matching entries are untouched; no match returns the
// record unchanged.
func ActivateCollaborator(rec *SubdomainRecord, email, userID string) *SubdomainRecord {
	normalized := NormalizeEmail(email)

	updated := *rec
	updated.Collaborators = make([]Collaborator, len(rec.Collaborators))
	changed := false
	for i, collab := range rec.Collaborators {
		if NormalizeEmail(collab.Email) == normalized {
			now := biztime.NowUTC()
			collab.Status = CollaboratorActive
			collab.UserID = userID
			collab.JoinedAt = &now
			changed = true
		}
		updated.Collaborators[i] = collab
	}

	if !changed {
		return rec
	}
	return &updated
}

// RemoveCollaborator deletes the collaborator matching email (case
// insensitive). Deletion is physical; there is no removed state.
func RemoveCollaborator(rec *SubdomainRecord, email string) *SubdomainRecord {
	normalized := NormalizeEmail(email)

	remaining := make([]Collaborator, 0, len(rec.Collaborators))
	for _, collab := range rec.Collaborators {
		if NormalizeEmail(collab.Email) != normalized {
			remaining = append(remaining, collab)
		}
	}

	if len(remaining) == len(rec.Collaborators) {
		return rec
	}

	updated := *rec
	updated.Collaborators = remaining
	return &updated
}
