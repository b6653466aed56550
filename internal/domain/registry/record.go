// Package registry holds the subdomain registry's data model and pure
// decision functions: availability, freeze/unfreeze, collaborator lifecycle,
// access resolution, and quota computation. Nothing in this package performs
// I/O; the HTTP layer sequences read, decide, write around these functions.
package registry

import (
	"strings"
	"time"
)

// SubdomainStatus is the access-gating state of a claimed subdomain.
type SubdomainStatus string

const (
	StatusActive SubdomainStatus = "active"
	StatusFrozen SubdomainStatus = "frozen"
)

// CollaboratorRight is the access level granted to a collaborator.
type CollaboratorRight string

const (
	RightRead  CollaboratorRight = "read"
	RightWrite CollaboratorRight = "write"
)

// CollaboratorStatus tracks the invite lifecycle. There is no removed
// state; removal deletes the entry.
type CollaboratorStatus string

const (
	CollaboratorInvited CollaboratorStatus = "invited"
	CollaboratorActive  CollaboratorStatus = "active"
)

// Collaborator is a secondary principal granted access to a subdomain's
// data without ownership. Uniqueness within a record is by normalized
// (lowercased) email.
type Collaborator struct {
	Email     string             `json:"email"`
	Right     CollaboratorRight  `json:"right"`
	Status    CollaboratorStatus `json:"status"`
	InvitedAt time.Time          `json:"invitedAt"`
	UserID    string             `json:"userId,omitempty"`
	JoinedAt  *time.Time         `json:"joinedAt,omitempty"`
	LedgerID  string             `json:"ledgerId,omitempty"`
}

// SubdomainRecord is the persisted state of a claimed subdomain, keyed by
// the lowercase subdomain name. FrozenAt is set iff Status is frozen.
type SubdomainRecord struct {
	OwnerID       string          `json:"ownerId"`
	ClaimedAt     time.Time       `json:"claimedAt"`
	Collaborators []Collaborator  `json:"collaborators"`
	Status        SubdomainStatus `json:"status"`
	FrozenAt      *time.Time      `json:"frozenAt,omitempty"`
	LedgerID      string          `json:"ledgerId,omitempty"`
}

// UserRecord indexes the subdomains a principal can reach, keyed by
// principal id. OwnedSubdomains is the quota-counted subset; legacy
// records may lack it, in which case it is derived lazily from Subdomains
// by cross-checking each record's owner and persisted back.
type UserRecord struct {
	Subdomains      []string `json:"subdomains"`
	OwnedSubdomains []string `json:"ownedSubdomains,omitempty"`
	// Quota is a historical per-user cap, superseded by the plan→quota
	// table but retained for records that still carry it.
	Quota int `json:"quota,omitempty"`
}

// HasOwnedIndex reports whether the record already carries the derived
// ownedSubdomains field.
func (u *UserRecord) HasOwnedIndex() bool {
	return u.OwnedSubdomains != nil
}

// NormalizeEmail lowercases and trims an email for collaborator matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName lowercases and trims a subdomain name; all lookups and
// persistence use the normalized form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize fills defaults on records read from legacy storage shapes:
// missing status means active, missing collaborators means none. It runs
// at read time so no migration pass is required before the service is
// correct.
func (r *SubdomainRecord) Normalize() {
	if r.Status == "" {
		r.Status = StatusActive
	}
	if r.Collaborators == nil {
		r.Collaborators = []Collaborator{}
	}
}

// Frozen reports whether the record is currently access-gated.
func (r *SubdomainRecord) Frozen() bool {
	return r.Status == StatusFrozen
}
