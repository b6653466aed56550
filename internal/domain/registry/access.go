package registry

// Role is the access level resolved for a (subdomain, caller) pair.
type Role string

const (
	RoleUnclaimed    Role = "unclaimed"
	RoleOwner        Role = "owner"
	RoleCollaborator Role = "collaborator"
	RoleInvited      Role = "invited"
	RoleNone         Role = "none"
)

// Access is the outcome of a user-id access check. Frozen always reflects
// the record's current status regardless of role, so callers can tell
// "no access" apart from "access revoked by billing".
type Access struct {
	HasAccess bool `json:"hasAccess"`
	Role      Role `json:"role"`
	Frozen    bool `json:"frozen"`
}

// HasAccess decides whether userID can reach the subdomain: owner, or an
// active collaborator bound to that user id.
func HasAccess(rec *SubdomainRecord, userID string) Access {
	frozen := rec.Frozen()

	if userID != "" && rec.OwnerID == userID {
		return Access{HasAccess: true, Role: RoleOwner, Frozen: frozen}
	}

	for _, collab := range rec.Collaborators {
		if collab.Status == CollaboratorActive && collab.UserID != "" && collab.UserID == userID {
			return Access{HasAccess: true, Role: RoleCollaborator, Frozen: frozen}
		}
	}

	return Access{Role: RoleNone, Frozen: frozen}
}

// HasAccessByEmail reports whether email matches any collaborator entry,
// invited or active. Used by invite-acceptance flows where the user may
// not have authenticated yet.
func HasAccessByEmail(rec *SubdomainRecord, email string) bool {
	normalized := NormalizeEmail(email)
	for _, collab := range rec.Collaborators {
		if NormalizeEmail(collab.Email) == normalized {
			return true
		}
	}
	return false
}

// Resolution is the outcome of role resolution for application gating.
// LedgerID precedence: collaborator-specific ledger, then record-level
// ledger, else empty.
type Resolution struct {
	Role     Role   `json:"role"`
	Frozen   bool   `json:"frozen"`
	LedgerID string `json:"ledgerId,omitempty"`
}

// Resolve determines the caller's role on a subdomain. Priority: owner,
// then active collaborator by user id, then collaborator entry matched by
// email (active entries resolve as collaborator, pending ones as invited),
// then none. A nil record resolves as unclaimed.
func Resolve(rec *SubdomainRecord, userID, email string) Resolution {
	if rec == nil {
		return Resolution{Role: RoleUnclaimed}
	}

	frozen := rec.Frozen()

	if userID != "" && rec.OwnerID == userID {
		return Resolution{Role: RoleOwner, Frozen: frozen, LedgerID: rec.LedgerID}
	}

	for _, collab := range rec.Collaborators {
		if collab.Status == CollaboratorActive && collab.UserID != "" && collab.UserID == userID {
			return Resolution{Role: RoleCollaborator, Frozen: frozen, LedgerID: collaboratorLedger(rec, collab)}
		}
	}

	if email != "" {
		normalized := NormalizeEmail(email)
		for _, collab := range rec.Collaborators {
			if NormalizeEmail(collab.Email) != normalized {
				continue
			}
			role := RoleInvited
			if collab.Status == CollaboratorActive {
				role = RoleCollaborator
			}
			return Resolution{Role: role, Frozen: frozen, LedgerID: collaboratorLedger(rec, collab)}
		}
	}

	return Resolution{Role: RoleNone, Frozen: frozen}
}

func collaboratorLedger(rec *SubdomainRecord, collab Collaborator) string {
	if collab.LedgerID != "" {
		return collab.LedgerID
	}
	return rec.LedgerID
}
