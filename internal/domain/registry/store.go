package registry

import "context"

// Store is the persistence contract for registry state. The backing store
// is a flat eventually-consistent key-value namespace with no cross-key
// transactions; absent records are returned as (nil, nil), never as an
// error.
type Store interface {
	GetSubdomain(ctx context.Context, name string) (*SubdomainRecord, error)
	PutSubdomain(ctx context.Context, name string, rec *SubdomainRecord) error
	DeleteSubdomain(ctx context.Context, name string) error
	// ListSubdomains prefix-scans every subdomain record, keyed by bare name.
	ListSubdomains(ctx context.Context) (map[string]*SubdomainRecord, error)

	GetUser(ctx context.Context, userID string) (*UserRecord, error)
	PutUser(ctx context.Context, userID string, rec *UserRecord) error
	DeleteUser(ctx context.Context, userID string) error

	GetReserved(ctx context.Context) (map[string]bool, error)
	PutReserved(ctx context.Context, reserved map[string]bool) error
	GetPreallocated(ctx context.Context) (map[string]string, error)
	PutPreallocated(ctx context.Context, preallocated map[string]string) error

	// GetQuotaOverrides returns the per-user admin override map; a true
	// value exempts that user from the billing and quota gates.
	GetQuotaOverrides(ctx context.Context) (map[string]bool, error)
	PutQuotaOverrides(ctx context.Context, overrides map[string]bool) error
}
