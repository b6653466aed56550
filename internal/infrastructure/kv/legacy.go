package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"subplane/internal/domain/registry"
)

// LegacyClaim is a subdomain entry in the historical aggregate shape,
// where the owner was recorded as userId.
type LegacyClaim struct {
	UserID        string                  `json:"userId"`
	ClaimedAt     time.Time               `json:"claimedAt"`
	Status        string                  `json:"status,omitempty"`
	FrozenAt      *time.Time              `json:"frozenAt,omitempty"`
	Collaborators []registry.Collaborator `json:"collaborators,omitempty"`
	LedgerID      string                  `json:"ledgerId,omitempty"`
}

// LegacySnapshot is the historical single-blob registry format, still
// served on the backward-compatible read endpoint.
type LegacySnapshot struct {
	Claims       map[string]LegacyClaim `json:"claims"`
	Reserved     []string               `json:"reserved"`
	Preallocated map[string]string      `json:"preallocated"`
}

// MigrateFromBlob decomposes the legacy aggregate blob into per-key
// subdomain, user, and config records, then deletes the blob. Safe to
// call on every cold start: when no blob exists it is a no-op and
// returns false.
func (s *Store) MigrateFromBlob(ctx context.Context) (bool, error) {
	data, err := s.client.Get(ctx, legacyRegistryKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read legacy registry: %w", err)
	}

	var snapshot LegacySnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return false, fmt.Errorf("failed to unmarshal legacy registry: %w", err)
	}

	users := make(map[string]*registry.UserRecord)
	indexUser := func(userID, name string, owned bool) {
		user, ok := users[userID]
		if !ok {
			user = &registry.UserRecord{Subdomains: []string{}, OwnedSubdomains: []string{}}
			users[userID] = user
		}
		user.Subdomains = append(user.Subdomains, name)
		if owned {
			user.OwnedSubdomains = append(user.OwnedSubdomains, name)
		}
	}

	for name, claim := range snapshot.Claims {
		rec := &registry.SubdomainRecord{
			OwnerID:       claim.UserID,
			ClaimedAt:     claim.ClaimedAt,
			Collaborators: claim.Collaborators,
			Status:        registry.SubdomainStatus(claim.Status),
			FrozenAt:      claim.FrozenAt,
			LedgerID:      claim.LedgerID,
		}
		rec.Normalize()

		name = normalizeName(name)
		if err := s.PutSubdomain(ctx, name, rec); err != nil {
			return false, err
		}

		indexUser(claim.UserID, name, true)
		for _, collab := range rec.Collaborators {
			if collab.Status == registry.CollaboratorActive && collab.UserID != "" {
				indexUser(collab.UserID, name, false)
			}
		}
	}

	for userID, user := range users {
		if err := s.PutUser(ctx, userID, user); err != nil {
			return false, err
		}
	}

	if len(snapshot.Reserved) > 0 {
		reserved := make(map[string]bool, len(snapshot.Reserved))
		for _, name := range snapshot.Reserved {
			reserved[name] = true
		}
		if err := s.PutReserved(ctx, reserved); err != nil {
			return false, err
		}
	}
	if len(snapshot.Preallocated) > 0 {
		if err := s.PutPreallocated(ctx, snapshot.Preallocated); err != nil {
			return false, err
		}
	}

	if err := s.client.Del(ctx, legacyRegistryKey).Err(); err != nil {
		return false, fmt.Errorf("failed to delete legacy registry key: %w", err)
	}

	s.logger.Infow("migrated legacy registry blob",
		"subdomains", len(snapshot.Claims),
		"users", len(users))

	return true, nil
}

// ReadLegacyFormat reconstructs the aggregate shape from current per-key
// state, for the backward-compatible /registry.json endpoint.
func (s *Store) ReadLegacyFormat(ctx context.Context) (*LegacySnapshot, error) {
	subdomains, err := s.ListSubdomains(ctx)
	if err != nil {
		return nil, err
	}

	claims := make(map[string]LegacyClaim, len(subdomains))
	for name, rec := range subdomains {
		claims[name] = LegacyClaim{
			UserID:        rec.OwnerID,
			ClaimedAt:     rec.ClaimedAt,
			Status:        string(rec.Status),
			FrozenAt:      rec.FrozenAt,
			Collaborators: rec.Collaborators,
			LedgerID:      rec.LedgerID,
		}
	}

	reservedSet, err := s.GetReserved(ctx)
	if err != nil {
		return nil, err
	}
	reserved := make([]string, 0, len(reservedSet))
	for name := range reservedSet {
		reserved = append(reserved, name)
	}
	sort.Strings(reserved)

	preallocated, err := s.GetPreallocated(ctx)
	if err != nil {
		return nil, err
	}

	return &LegacySnapshot{
		Claims:       claims,
		Reserved:     reserved,
		Preallocated: preallocated,
	}, nil
}
