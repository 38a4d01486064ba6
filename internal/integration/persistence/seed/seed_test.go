// Package seed embeds the critical-minerals reference dataset and parses it
// into domain entities for first-startup seeding.
package seed

import (
	"testing"
)

func TestEmbeddedDataset_Load(t *testing.T) {
	minerals, err := NewDataset().Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(minerals) != 6 {
		t.Fatalf("expected 6 minerals, got %d", len(minerals))
	}

	byName := make(map[string]bool)
	totalDeposits := 0
	for _, m := range minerals {
		byName[m.Name] = true
		totalDeposits += len(m.Deposits)

		if m.Symbol == "" {
			t.Errorf("%s: missing symbol", m.Name)
		}
		if m.Description == "" {
			t.Errorf("%s: missing description", m.Name)
		}
		if len(m.Uses) == 0 {
			t.Errorf("%s: missing uses", m.Name)
		}
		if len(m.ProductionHistory) == 0 {
			t.Errorf("%s: missing production history", m.Name)
		}
		if len(m.Deposits) == 0 {
			t.Errorf("%s: missing deposits", m.Name)
		}
		if m.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("%s: missing generated id", m.Name)
		}
	}

	for _, name := range []string{"Cobalt", "Copper", "Graphite", "Lithium", "Manganese", "Platinum"} {
		if !byName[name] {
			t.Errorf("dataset is missing %s", name)
		}
	}

	if totalDeposits != 16 {
		t.Errorf("expected 16 deposit sites in total, got %d", totalDeposits)
	}
}

func TestEmbeddedDataset_CobaltSeries(t *testing.T) {
	minerals, err := NewDataset().Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range minerals {
		if m.Name != "Cobalt" {
			continue
		}

		series := m.AnnualProductionSeries()
		if len(series) != 5 {
			t.Fatalf("expected 5 years of cobalt production, got %d", len(series))
		}
		if series[0].Year != 2020 || series[0].Tonnes.String() != "100300" {
			t.Errorf("2020: expected 100300 t, got %s for year %d", series[0].Tonnes, series[0].Year)
		}
		if series[4].Year != 2024 || series[4].Tonnes.String() != "221800" {
			t.Errorf("2024: expected 221800 t, got %s for year %d", series[4].Tonnes, series[4].Year)
		}
		return
	}
	t.Fatal("cobalt not found in the dataset")
}
