package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/logger"
)

type SetQuotaOverrideCommand struct {
	UserID string
	// Enabled turns the override on: an enabled override exempts the
	// user from the billing and quota gates. Disabling removes the map
	// entry entirely.
	Enabled bool
}

// SetQuotaOverrideUseCase maintains the per-user quota override map that
// admins use to grant unlimited claims outside the plan table.
type SetQuotaOverrideUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewSetQuotaOverrideUseCase(store registry.Store, log logger.Interface) *SetQuotaOverrideUseCase {
	return &SetQuotaOverrideUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *SetQuotaOverrideUseCase) Execute(ctx context.Context, cmd SetQuotaOverrideCommand) error {
	overrides, err := uc.store.GetQuotaOverrides(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quota overrides: %w", err)
	}

	if cmd.Enabled {
		overrides[cmd.UserID] = true
	} else {
		delete(overrides, cmd.UserID)
	}

	if err := uc.store.PutQuotaOverrides(ctx, overrides); err != nil {
		return fmt.Errorf("failed to persist quota overrides: %w", err)
	}

	uc.logger.Infow("quota override updated", "user_id", cmd.UserID, "enabled", cmd.Enabled)
	return nil
}
