package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

// ResolveAccessUseCase answers the role question applications gate on:
// what is this caller to this subdomain, and is the tenant frozen.
type ResolveAccessUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewResolveAccessUseCase(store registry.Store, log logger.Interface) *ResolveAccessUseCase {
	return &ResolveAccessUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *ResolveAccessUseCase) Execute(ctx context.Context, name, userID, email string) (registry.Resolution, error) {
	rec, err := uc.store.GetSubdomain(ctx, registry.NormalizeName(name))
	if err != nil {
		return registry.Resolution{}, fmt.Errorf("failed to load subdomain: %w", err)
	}
	return registry.Resolve(rec, userID, email), nil
}
