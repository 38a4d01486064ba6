// Package mineral contains use cases for the critical-minerals reference data.
package mineral

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

// ListMineralsOutput represents the output of listing minerals.
type ListMineralsOutput struct {
	Minerals []*entity.Mineral
}

// ListMineralsUseCase handles listing the mineral catalogue.
type ListMineralsUseCase struct {
	mineralRepo adapter.MineralRepository
}

// NewListMineralsUseCase creates a new ListMineralsUseCase instance.
func NewListMineralsUseCase(mineralRepo adapter.MineralRepository) *ListMineralsUseCase {
	return &ListMineralsUseCase{
		mineralRepo: mineralRepo,
	}
}

// Execute retrieves all minerals ordered by name.
func (uc *ListMineralsUseCase) Execute(ctx context.Context) (*ListMineralsOutput, error) {
	minerals, err := uc.mineralRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list minerals: %w", err)
	}
	return &ListMineralsOutput{Minerals: minerals}, nil
}
