// Package mineral contains use cases for the critical-minerals reference data.
package mineral

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minn-platform/backend/internal/application/adapter"
)

// SeedMineralsUseCase loads the reference dataset into an empty mineral
// store. It runs at startup and does nothing once data exists.
type SeedMineralsUseCase struct {
	mineralRepo adapter.MineralRepository
	dataset     adapter.MineralDataset
}

// NewSeedMineralsUseCase creates a new SeedMineralsUseCase instance.
func NewSeedMineralsUseCase(mineralRepo adapter.MineralRepository, dataset adapter.MineralDataset) *SeedMineralsUseCase {
	return &SeedMineralsUseCase{
		mineralRepo: mineralRepo,
		dataset:     dataset,
	}
}

// Execute seeds the mineral store if it is empty.
func (uc *SeedMineralsUseCase) Execute(ctx context.Context) error {
	count, err := uc.mineralRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count minerals: %w", err)
	}
	if count > 0 {
		slog.Debug("Mineral store already seeded", "count", count)
		return nil
	}

	minerals, err := uc.dataset.Load()
	if err != nil {
		return fmt.Errorf("failed to load mineral dataset: %w", err)
	}

	if err := uc.mineralRepo.CreateBatch(ctx, minerals); err != nil {
		return fmt.Errorf("failed to seed minerals: %w", err)
	}

	slog.Info("Seeded mineral reference data", "minerals", len(minerals))
	return nil
}
