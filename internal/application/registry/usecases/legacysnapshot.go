package usecases

import (
	"context"
	"fmt"

	"subplane/internal/infrastructure/kv"
)

// LegacyReader reconstructs the historical aggregate registry shape.
type LegacyReader interface {
	ReadLegacyFormat(ctx context.Context) (*kv.LegacySnapshot, error)
}

// GetLegacySnapshotUseCase serves the backward-compatible registry dump
// consumed by tooling that predates the per-key layout.
type GetLegacySnapshotUseCase struct {
	reader LegacyReader
}

func NewGetLegacySnapshotUseCase(reader LegacyReader) *GetLegacySnapshotUseCase {
	return &GetLegacySnapshotUseCase{reader: reader}
}

func (uc *GetLegacySnapshotUseCase) Execute(ctx context.Context) (*kv.LegacySnapshot, error) {
	snapshot, err := uc.reader.ReadLegacyFormat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry snapshot: %w", err)
	}
	return snapshot, nil
}
