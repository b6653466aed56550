// Package usecases sequences "read, decide, write" around the registry's
// pure decision functions. Use cases hold no mutable state; every request
// independently reads current KV state, applies a decision, and persists.
package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

type CheckSubdomainUseCase struct {
	store          registry.Store
	staticReserved []string
	logger         logger.Interface
}

func NewCheckSubdomainUseCase(store registry.Store, staticReserved []string, log logger.Interface) *CheckSubdomainUseCase {
	return &CheckSubdomainUseCase{
		store:          store,
		staticReserved: staticReserved,
		logger:         log,
	}
}

// Execute decides availability for name against current registry state.
func (uc *CheckSubdomainUseCase) Execute(ctx context.Context, name string) (registry.Availability, error) {
	name = registry.NormalizeName(name)

	existing, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return registry.Availability{}, fmt.Errorf("failed to load subdomain: %w", err)
	}

	reserved, preallocated, err := loadNameConfig(ctx, uc.store, uc.staticReserved)
	if err != nil {
		return registry.Availability{}, err
	}

	return registry.CheckAvailability(name, existing, reserved, preallocated), nil
}

// ExecuteAccess answers the public access sub-query for a (subdomain,
// userId) pair. An unclaimed subdomain grants no access.
func (uc *CheckSubdomainUseCase) ExecuteAccess(ctx context.Context, name, userID string) (registry.Access, error) {
	rec, err := uc.store.GetSubdomain(ctx, registry.NormalizeName(name))
	if err != nil {
		return registry.Access{}, fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return registry.Access{Role: registry.RoleNone}, nil
	}
	return registry.HasAccess(rec, userID), nil
}

// loadNameConfig merges the KV reserved set with the deployment-static
// reserved list and loads the preallocation map.
func loadNameConfig(ctx context.Context, store registry.Store, staticReserved []string) (map[string]bool, map[string]string, error) {
	reserved, err := store.GetReserved(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reserved names: %w", err)
	}
	for _, name := range staticReserved {
		reserved[registry.NormalizeName(name)] = true
	}

	preallocated, err := store.GetPreallocated(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load preallocated names: %w", err)
	}

	return reserved, preallocated, nil
}
