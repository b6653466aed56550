// Package kv is a typed façade over the flat key-value namespace backing
// the registry. Three record families share the namespace — subdomain:<name>,
// user:<id>, config:<key> — plus the legacy aggregate blob under "registry".
// Records are JSON values; reads normalize legacy shapes on the fly so no
// migration pass is required before the service is correct.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

const (
	subdomainPrefix = "subdomain:"
	userPrefix      = "user:"

	reservedKey       = "config:reserved"
	preallocatedKey   = "config:preallocated"
	quotaOverridesKey = "config:quota_overrides"

	legacyRegistryKey = "registry"

	scanBatchSize = 100
)

// Store implements registry.Store on a redis-compatible backend. The
// backend offers no cross-key transactions and no compare-and-swap; the
// accepted lost-update window is documented on the claim path.
type Store struct {
	client *redis.Client
	logger logger.Interface
}

func NewStore(client *redis.Client, log logger.Interface) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}

// Ping reports backend reachability; used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) GetSubdomain(ctx context.Context, name string) (*registry.SubdomainRecord, error) {
	var rec registry.SubdomainRecord
	found, err := s.getJSON(ctx, subdomainPrefix+normalizeName(name), &rec)
	if err != nil || !found {
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}

func (s *Store) PutSubdomain(ctx context.Context, name string, rec *registry.SubdomainRecord) error {
	return s.putJSON(ctx, subdomainPrefix+normalizeName(name), rec)
}

func (s *Store) DeleteSubdomain(ctx context.Context, name string) error {
	return s.client.Del(ctx, subdomainPrefix+normalizeName(name)).Err()
}

// ListSubdomains prefix-scans every subdomain record and returns a lookup
// keyed by bare name.
func (s *Store) ListSubdomains(ctx context.Context) (map[string]*registry.SubdomainRecord, error) {
	result := make(map[string]*registry.SubdomainRecord)

	iter := s.client.Scan(ctx, 0, subdomainPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		name := strings.TrimPrefix(key, subdomainPrefix)

		var rec registry.SubdomainRecord
		found, err := s.getJSON(ctx, key, &rec)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s during scan: %w", key, err)
		}
		if !found {
			// Deleted between scan and read; skip.
			continue
		}
		rec.Normalize()
		result[name] = &rec
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan subdomains: %w", err)
	}

	return result, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*registry.UserRecord, error) {
	var rec registry.UserRecord
	found, err := s.getJSON(ctx, userPrefix+userID, &rec)
	if err != nil || !found {
		return nil, err
	}
	if rec.Subdomains == nil {
		rec.Subdomains = []string{}
	}
	return &rec, nil
}

func (s *Store) PutUser(ctx context.Context, userID string, rec *registry.UserRecord) error {
	return s.putJSON(ctx, userPrefix+userID, rec)
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	return s.client.Del(ctx, userPrefix+userID).Err()
}

// GetReserved returns the reserved-name set from the config record. The
// record is stored as a JSON array of names.
func (s *Store) GetReserved(ctx context.Context) (map[string]bool, error) {
	var names []string
	if _, err := s.getJSON(ctx, reservedKey, &names); err != nil {
		return nil, err
	}

	reserved := make(map[string]bool, len(names))
	for _, name := range names {
		reserved[normalizeName(name)] = true
	}
	return reserved, nil
}

func (s *Store) PutReserved(ctx context.Context, reserved map[string]bool) error {
	names := make([]string, 0, len(reserved))
	for name, ok := range reserved {
		if ok {
			names = append(names, normalizeName(name))
		}
	}
	sort.Strings(names)
	return s.putJSON(ctx, reservedKey, names)
}

func (s *Store) GetPreallocated(ctx context.Context) (map[string]string, error) {
	preallocated := make(map[string]string)
	if _, err := s.getJSON(ctx, preallocatedKey, &preallocated); err != nil {
		return nil, err
	}

	normalized := make(map[string]string, len(preallocated))
	for name, ownerID := range preallocated {
		normalized[normalizeName(name)] = ownerID
	}
	return normalized, nil
}

func (s *Store) PutPreallocated(ctx context.Context, preallocated map[string]string) error {
	return s.putJSON(ctx, preallocatedKey, preallocated)
}

func (s *Store) GetQuotaOverrides(ctx context.Context) (map[string]bool, error) {
	overrides := make(map[string]bool)
	if _, err := s.getJSON(ctx, quotaOverridesKey, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (s *Store) PutQuotaOverrides(ctx context.Context, overrides map[string]bool) error {
	return s.putJSON(ctx, quotaOverridesKey, overrides)
}

// getJSON reads and unmarshals key into dest. Absent keys return
// (false, nil); dest is left untouched.
func (s *Store) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) putJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	// Registry records never expire.
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
