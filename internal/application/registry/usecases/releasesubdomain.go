package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/errors"
	"subplane/internal/shared/logger"
)

// ReleaseSubdomainUseCase is the explicit admin action that hard-deletes
// a record and prunes the owner's index. Nothing else in the service
// deletes registry state.
type ReleaseSubdomainUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewReleaseSubdomainUseCase(store registry.Store, log logger.Interface) *ReleaseSubdomainUseCase {
	return &ReleaseSubdomainUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *ReleaseSubdomainUseCase) Execute(ctx context.Context, name string) error {
	name = registry.NormalizeName(name)

	rec, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return errors.NewNotFoundError("subdomain not found")
	}

	if err := uc.store.DeleteSubdomain(ctx, name); err != nil {
		return fmt.Errorf("failed to delete subdomain: %w", err)
	}

	user, err := uc.store.GetUser(ctx, rec.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load owner index: %w", err)
	}
	if user != nil {
		user.Subdomains = removeName(user.Subdomains, name)
		user.OwnedSubdomains = removeName(user.OwnedSubdomains, name)
		if err := uc.store.PutUser(ctx, rec.OwnerID, user); err != nil {
			return fmt.Errorf("failed to update owner index: %w", err)
		}
	}

	uc.logger.Infow("subdomain released", "subdomain", name, "owner_id", rec.OwnerID)
	return nil
}

func removeName(names []string, target string) []string {
	if names == nil {
		return nil
	}
	remaining := make([]string, 0, len(names))
	for _, name := range names {
		if name != target {
			remaining = append(remaining, name)
		}
	}
	return remaining
}
