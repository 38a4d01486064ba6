package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func record(year int, tonnes, country string) ProductionRecord {
	return ProductionRecord{
		Year:    year,
		Tonnes:  decimal.RequireFromString(tonnes),
		Country: country,
	}
}

func TestMineral_AnnualProductionSeries(t *testing.T) {
	t.Run("sums across countries per year", func(t *testing.T) {
		m := &Mineral{
			Name: "Cobalt",
			ProductionHistory: []ProductionRecord{
				record(2020, "98000", "DR Congo"),
				record(2020, "2300", "Morocco"),
				record(2021, "119000", "DR Congo"),
				record(2021, "2300", "Morocco"),
			},
		}

		series := m.AnnualProductionSeries()
		if len(series) != 2 {
			t.Fatalf("expected 2 years, got %d", len(series))
		}
		if series[0].Year != 2020 || series[0].Tonnes.String() != "100300" {
			t.Errorf("2020: expected 100300, got %s for year %d", series[0].Tonnes, series[0].Year)
		}
		if series[1].Year != 2021 || series[1].Tonnes.String() != "121300" {
			t.Errorf("2021: expected 121300, got %s for year %d", series[1].Tonnes, series[1].Year)
		}
	})

	t.Run("orders years ascending regardless of input order", func(t *testing.T) {
		m := &Mineral{
			ProductionHistory: []ProductionRecord{
				record(2024, "10", "A"),
				record(2020, "10", "A"),
				record(2022, "10", "A"),
			},
		}

		series := m.AnnualProductionSeries()
		years := []int{series[0].Year, series[1].Year, series[2].Year}
		if years[0] != 2020 || years[1] != 2022 || years[2] != 2024 {
			t.Errorf("expected ascending years, got %v", years)
		}
	})

	t.Run("keeps decimal precision", func(t *testing.T) {
		m := &Mineral{
			ProductionHistory: []ProductionRecord{
				record(2020, "0.1", "A"),
				record(2020, "0.2", "B"),
			},
		}

		series := m.AnnualProductionSeries()
		if got := series[0].Tonnes.String(); got != "0.3" {
			t.Errorf("expected 0.3, got %s", got)
		}
	})

	t.Run("empty history yields an empty series", func(t *testing.T) {
		m := &Mineral{}
		if series := m.AnnualProductionSeries(); len(series) != 0 {
			t.Errorf("expected an empty series, got %d entries", len(series))
		}
	})
}
