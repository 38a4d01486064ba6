// Package seed embeds the critical-minerals reference dataset and parses it
// into domain entities for first-startup seeding.
package seed

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

//go:embed minerals.json
var mineralsJSON []byte

type datasetFile struct {
	Minerals []mineralRecord `json:"minerals"`
}

type mineralRecord struct {
	Name              string            `json:"name"`
	Symbol            string            `json:"symbol"`
	Description       string            `json:"description"`
	Uses              []string          `json:"uses"`
	ProductionHistory []productionEntry `json:"production_history"`
	Deposits          []depositEntry    `json:"deposits"`
}

// productionEntry carries both tonnage fields found in source datasets:
// production_t is gross tonnage, production_contained_t is contained metal.
// Gross wins when both are present.
type productionEntry struct {
	Year                 int      `json:"year"`
	Country              string   `json:"country"`
	ProductionT          *float64 `json:"production_t"`
	ProductionContainedT *float64 `json:"production_contained_t"`
}

type depositEntry struct {
	Site    string  `json:"site"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// embeddedDataset implements adapter.MineralDataset over the embedded JSON.
type embeddedDataset struct{}

// NewDataset returns the embedded reference dataset.
func NewDataset() adapter.MineralDataset {
	return &embeddedDataset{}
}

// Load parses the embedded dataset into domain entities.
func (d *embeddedDataset) Load() ([]*entity.Mineral, error) {
	var file datasetFile
	if err := json.Unmarshal(mineralsJSON, &file); err != nil {
		return nil, domainerror.NewMineralError(
			domainerror.ErrCodeSeedDataInvalid,
			"failed to parse mineral dataset",
			err,
		)
	}
	if len(file.Minerals) == 0 {
		return nil, domainerror.NewMineralError(
			domainerror.ErrCodeSeedDataInvalid,
			"mineral dataset is empty",
			domainerror.ErrSeedDataInvalid,
		)
	}

	now := time.Now().UTC()
	minerals := make([]*entity.Mineral, 0, len(file.Minerals))
	for _, record := range file.Minerals {
		if record.Name == "" {
			return nil, domainerror.NewMineralError(
				domainerror.ErrCodeSeedDataInvalid,
				"mineral dataset contains an unnamed mineral",
				domainerror.ErrSeedDataInvalid,
			)
		}

		mineral := &entity.Mineral{
			ID:          uuid.New(),
			Name:        record.Name,
			Symbol:      record.Symbol,
			Description: record.Description,
			Uses:        record.Uses,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, p := range record.ProductionHistory {
			mineral.ProductionHistory = append(mineral.ProductionHistory, entity.ProductionRecord{
				Year:    p.Year,
				Tonnes:  p.tonnes(),
				Country: p.Country,
			})
		}
		for _, dep := range record.Deposits {
			mineral.Deposits = append(mineral.Deposits, entity.Deposit{
				Site:    dep.Site,
				Country: dep.Country,
				Lat:     dep.Lat,
				Lon:     dep.Lon,
			})
		}
		minerals = append(minerals, mineral)
	}
	return minerals, nil
}

// tonnes picks gross tonnage when reported, falling back to contained metal.
func (p productionEntry) tonnes() decimal.Decimal {
	if p.ProductionT != nil && *p.ProductionT != 0 {
		return decimal.NewFromFloat(*p.ProductionT)
	}
	if p.ProductionContainedT != nil {
		return decimal.NewFromFloat(*p.ProductionContainedT)
	}
	return decimal.Zero
}
