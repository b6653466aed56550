package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/errors"
	"subplane/internal/shared/logger"
)

type SetLedgerCommand struct {
	Subdomain string
	LedgerID  string
	UserID    string
}

// SetLedgerUseCase assigns the record-level ledger partition. Only the
// owner may set it; callers that are not the owner get the same opaque
// unauthorized outcome as an invalid token.
type SetLedgerUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewSetLedgerUseCase(store registry.Store, log logger.Interface) *SetLedgerUseCase {
	return &SetLedgerUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *SetLedgerUseCase) Execute(ctx context.Context, cmd SetLedgerCommand) error {
	name := registry.NormalizeName(cmd.Subdomain)

	rec, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return errors.NewNotFoundError("subdomain not found")
	}
	if rec.OwnerID != cmd.UserID {
		return errors.NewUnauthorizedError("unauthorized")
	}

	updated := *rec
	updated.LedgerID = cmd.LedgerID
	if err := uc.store.PutSubdomain(ctx, name, &updated); err != nil {
		return fmt.Errorf("failed to persist subdomain: %w", err)
	}

	uc.logger.Infow("ledger assigned", "subdomain", name, "ledger_id", cmd.LedgerID)
	return nil
}
