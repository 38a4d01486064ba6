package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionRecord is one year of reported production for a mineral in
// one country. Tonnage is decimal because source datasets mix contained
// and gross figures with sub-tonne precision.
type ProductionRecord struct {
	Year    int
	Tonnes  decimal.Decimal
	Country string
}

// Deposit is a known extraction or exploration site.
type Deposit struct {
	Site    string
	Country string
	Lat     float64
	Lon     float64
}

// Mineral is one critical mineral tracked by the platform, with its
// production history and known deposits.
type Mineral struct {
	ID                uuid.UUID
	Name              string
	Symbol            string
	Description       string
	Uses              []string
	ProductionHistory []ProductionRecord
	Deposits          []Deposit
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AnnualProduction is production summed across countries for one year.
type AnnualProduction struct {
	Year   int
	Tonnes decimal.Decimal
}

// AnnualProductionSeries aggregates the production history by year,
// summing across countries, and returns the series in ascending year order.
func (m *Mineral) AnnualProductionSeries() []AnnualProduction {
	totals := make(map[int]decimal.Decimal)
	for _, record := range m.ProductionHistory {
		totals[record.Year] = totals[record.Year].Add(record.Tonnes)
	}

	series := make([]AnnualProduction, 0, len(totals))
	for year, tonnes := range totals {
		series = append(series, AnnualProduction{Year: year, Tonnes: tonnes})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	return series
}
