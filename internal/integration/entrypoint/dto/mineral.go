package dto

import (
	"github.com/minn-platform/backend/internal/domain/entity"
)

// MineralResponse represents one catalogue entry. Tonnage figures are
// strings to preserve the decimal precision of the source dataset.
type MineralResponse struct {
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Description  string   `json:"description"`
	Uses         []string `json:"uses"`
	DepositCount int      `json:"deposit_count"`
}

// MineralListResponse represents the mineral catalogue.
type MineralListResponse struct {
	Minerals []MineralResponse `json:"minerals"`
	Count    int               `json:"count"`
}

// AnnualProductionResponse is production summed across countries for one year.
type AnnualProductionResponse struct {
	Year   int    `json:"year"`
	Tonnes string `json:"tonnes"`
}

// ProductionResponse represents a mineral's aggregated production history.
type ProductionResponse struct {
	Mineral string                     `json:"mineral"`
	Symbol  string                     `json:"symbol"`
	Series  []AnnualProductionResponse `json:"series"`
}

// ToMineralResponse converts a domain Mineral entity to a MineralResponse DTO.
func ToMineralResponse(m *entity.Mineral) MineralResponse {
	uses := m.Uses
	if uses == nil {
		uses = []string{}
	}
	return MineralResponse{
		Name:         m.Name,
		Symbol:       m.Symbol,
		Description:  m.Description,
		Uses:         uses,
		DepositCount: len(m.Deposits),
	}
}

// ToProductionResponse converts an aggregated production series to its DTO.
func ToProductionResponse(m *entity.Mineral, series []entity.AnnualProduction) ProductionResponse {
	points := make([]AnnualProductionResponse, 0, len(series))
	for _, p := range series {
		points = append(points, AnnualProductionResponse{
			Year:   p.Year,
			Tonnes: p.Tonnes.String(),
		})
	}
	return ProductionResponse{
		Mineral: m.Name,
		Symbol:  m.Symbol,
		Series:  points,
	}
}
