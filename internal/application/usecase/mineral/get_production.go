// Package mineral contains use cases for the critical-minerals reference data.
package mineral

import (
	"context"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// GetProductionInput represents the input for a production series lookup.
type GetProductionInput struct {
	Name string
}

// GetProductionOutput represents the output of a production series lookup.
type GetProductionOutput struct {
	Mineral *entity.Mineral
	Series  []entity.AnnualProduction
}

// GetProductionUseCase aggregates a mineral's production history per year.
type GetProductionUseCase struct {
	mineralRepo adapter.MineralRepository
}

// NewGetProductionUseCase creates a new GetProductionUseCase instance.
func NewGetProductionUseCase(mineralRepo adapter.MineralRepository) *GetProductionUseCase {
	return &GetProductionUseCase{
		mineralRepo: mineralRepo,
	}
}

// Execute looks the mineral up by name and returns its production summed
// across countries per year, oldest year first.
func (uc *GetProductionUseCase) Execute(ctx context.Context, input GetProductionInput) (*GetProductionOutput, error) {
	mineral, err := uc.mineralRepo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, domainerror.NewMineralError(
			domainerror.ErrCodeMineralNotFound,
			"unknown mineral",
			domainerror.ErrMineralNotFound,
		)
	}

	series := mineral.AnnualProductionSeries()
	if len(series) == 0 {
		return nil, domainerror.NewMineralError(
			domainerror.ErrCodeNoProductionData,
			"no production data available for "+mineral.Name,
			domainerror.ErrNoProductionData,
		)
	}

	return &GetProductionOutput{Mineral: mineral, Series: series}, nil
}
