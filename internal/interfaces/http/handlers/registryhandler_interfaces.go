package handlers

import (
	"context"

	"subplane/internal/application/registry/usecases"
	"subplane/internal/domain/registry"
	"subplane/internal/infrastructure/kv"
)

// Use case interfaces for RegistryHandler

type checkSubdomainUseCase interface {
	Execute(ctx context.Context, name string) (registry.Availability, error)
	ExecuteAccess(ctx context.Context, name, userID string) (registry.Access, error)
}

type resolveAccessUseCase interface {
	Execute(ctx context.Context, name, userID, email string) (registry.Resolution, error)
}

type claimSubdomainUseCase interface {
	Execute(ctx context.Context, cmd usecases.ClaimCommand) (*usecases.ClaimResult, error)
}

type setLedgerUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetLedgerCommand) error
}

type legacySnapshotUseCase interface {
	Execute(ctx context.Context) (*kv.LegacySnapshot, error)
}

type collaboratorUseCase interface {
	Invite(ctx context.Context, cmd usecases.InviteCollaboratorCommand) error
	Accept(ctx context.Context, cmd usecases.AcceptInviteCommand) error
	Remove(ctx context.Context, cmd usecases.RemoveCollaboratorCommand) error
}
