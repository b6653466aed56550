package usecases

import (
	"context"
	"fmt"

	"subplane/internal/domain/registry"
	"subplane/internal/shared/errors"
	"subplane/internal/shared/logger"
)

type InviteCollaboratorCommand struct {
	Subdomain string
	OwnerID   string
	Email     string
	Right     registry.CollaboratorRight
	LedgerID  string
}

type AcceptInviteCommand struct {
	Subdomain string
	UserID    string
	Email     string
}

type RemoveCollaboratorCommand struct {
	Subdomain string
	OwnerID   string
	Email     string
}

// CollaboratorUseCase manages the collaborator list of a subdomain
// record. Invite and remove are owner-only; accept binds the
// authenticated caller's user id to the entry matching their verified
// email.
type CollaboratorUseCase struct {
	store  registry.Store
	logger logger.Interface
}

func NewCollaboratorUseCase(store registry.Store, log logger.Interface) *CollaboratorUseCase {
	return &CollaboratorUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *CollaboratorUseCase) Invite(ctx context.Context, cmd InviteCollaboratorCommand) error {
	name := registry.NormalizeName(cmd.Subdomain)

	rec, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return errors.NewNotFoundError("subdomain not found")
	}
	if rec.OwnerID != cmd.OwnerID {
		return errors.NewUnauthorizedError("unauthorized")
	}

	updated := registry.AddCollaborator(rec, cmd.Email, cmd.Right, cmd.LedgerID)
	if updated == rec {
		// Already invited, nothing to persist.
		return nil
	}

	if err := uc.store.PutSubdomain(ctx, name, updated); err != nil {
		return fmt.Errorf("failed to persist subdomain: %w", err)
	}

	uc.logger.Infow("collaborator invited", "subdomain", name, "email", registry.NormalizeEmail(cmd.Email))
	return nil
}

func (uc *CollaboratorUseCase) Accept(ctx context.Context, cmd AcceptInviteCommand) error {
	name := registry.NormalizeName(cmd.Subdomain)

	rec, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return errors.NewNotFoundError("subdomain not found")
	}

	updated := registry.ActivateCollaborator(rec, cmd.Email, cmd.UserID)
	if updated == rec {
		return errors.NewNotFoundError("no invitation found for this account")
	}

	if err := uc.store.PutSubdomain(ctx, name, updated); err != nil {
		return fmt.Errorf("failed to persist subdomain: %w", err)
	}

	uc.logger.Infow("collaborator activated", "subdomain", name, "user_id", cmd.UserID)
	return nil
}

func (uc *CollaboratorUseCase) Remove(ctx context.Context, cmd RemoveCollaboratorCommand) error {
	name := registry.NormalizeName(cmd.Subdomain)

	rec, err := uc.store.GetSubdomain(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load subdomain: %w", err)
	}
	if rec == nil {
		return errors.NewNotFoundError("subdomain not found")
	}
	if rec.OwnerID != cmd.OwnerID {
		return errors.NewUnauthorizedError("unauthorized")
	}

	updated := registry.RemoveCollaborator(rec, cmd.Email)
	if updated == rec {
		return errors.NewNotFoundError("collaborator not found")
	}

	if err := uc.store.PutSubdomain(ctx, name, updated); err != nil {
		return fmt.Errorf("failed to persist subdomain: %w", err)
	}

	uc.logger.Infow("collaborator removed", "subdomain", name, "email", registry.NormalizeEmail(cmd.Email))
	return nil
}
