// Package mineral contains use cases for the critical-minerals reference data.
package mineral

import (
	"context"
	"fmt"

	"github.com/minn-platform/backend/internal/application/adapter"
)

// DepositPoint is one deposit flattened with the mineral it belongs to.
type DepositPoint struct {
	Mineral string
	Symbol  string
	Site    string
	Country string
	Lat     float64
	Lon     float64
}

// GetDepositsOutput represents the output of the deposits lookup.
type GetDepositsOutput struct {
	Deposits []DepositPoint
}

// GetDepositsUseCase collects every known deposit site across all minerals
// for map rendering.
type GetDepositsUseCase struct {
	mineralRepo adapter.MineralRepository
}

// NewGetDepositsUseCase creates a new GetDepositsUseCase instance.
func NewGetDepositsUseCase(mineralRepo adapter.MineralRepository) *GetDepositsUseCase {
	return &GetDepositsUseCase{
		mineralRepo: mineralRepo,
	}
}

// Execute returns all deposits of all minerals, in catalogue order.
func (uc *GetDepositsUseCase) Execute(ctx context.Context) (*GetDepositsOutput, error) {
	minerals, err := uc.mineralRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load minerals: %w", err)
	}

	var deposits []DepositPoint
	for _, m := range minerals {
		for _, d := range m.Deposits {
			deposits = append(deposits, DepositPoint{
				Mineral: m.Name,
				Symbol:  m.Symbol,
				Site:    d.Site,
				Country: d.Country,
				Lat:     d.Lat,
				Lon:     d.Lon,
			})
		}
	}

	return &GetDepositsOutput{Deposits: deposits}, nil
}
