package fuel

import (
	"testing"

	"github.com/shopspring/decimal"
)

func kpiRow(dateKey int, station string, price string) PriceRow {
	return PriceRow{
		DateKey:     dateKey,
		StationName: station,
		Price:       decimal.RequireFromString(price),
	}
}

func wantMetric(t *testing.T, name string, m Metric, value, delta string) {
	t.Helper()
	if m.Value == nil {
		t.Fatalf("%s: expected value %s, got nil", name, value)
	}
	if m.Value.String() != value {
		t.Fatalf("%s: expected value %s, got %s", name, value, m.Value)
	}
	if delta == "" {
		if m.Delta != nil {
			t.Fatalf("%s: expected nil delta, got %s", name, m.Delta)
		}
		return
	}
	if m.Delta == nil {
		t.Fatalf("%s: expected delta %s, got nil", name, delta)
	}
	if m.Delta.String() != delta {
		t.Fatalf("%s: expected delta %s, got %s", name, delta, m.Delta)
	}
}

func TestComputeKpis(t *testing.T) {
	rows := []PriceRow{
		kpiRow(1, "P1", "1.5"),
		kpiRow(1, "P2", "1.5"),
		kpiRow(2, "A", "1"),
		kpiRow(2, "B", "2"),
		kpiRow(1, "P3", "1.5"),
		kpiRow(2, "C", "3"),
	}

	kpis := ComputeKpis(rows)
	if !kpis.HasData {
		t.Fatal("expected HasData")
	}
	wantMetric(t, "max", kpis.Max, "3", "1.5")
	wantMetric(t, "min", kpis.Min, "1", "-0.5")
	wantMetric(t, "mean", kpis.Mean, "2", "0.5")
}

func TestComputeKpisEmptyDataset(t *testing.T) {
	kpis := ComputeKpis(nil)
	if kpis.HasData {
		t.Fatal("expected HasData false for empty dataset")
	}
	if kpis.Max.Value != nil || kpis.Min.Value != nil || kpis.Mean.Value != nil {
		t.Fatal("expected nil metric values for empty dataset")
	}
}

func TestComputeKpisWithoutPriorDays(t *testing.T) {
	// First ever ingestion: a single date, so there is nothing to compare
	// against. Values are present, deltas are not.
	rows := []PriceRow{
		kpiRow(7, "A", "1.2"),
		kpiRow(7, "B", "1.4"),
	}

	kpis := ComputeKpis(rows)
	if !kpis.HasData {
		t.Fatal("expected HasData")
	}
	wantMetric(t, "max", kpis.Max, "1.4", "")
	wantMetric(t, "min", kpis.Min, "1.2", "")
	wantMetric(t, "mean", kpis.Mean, "1.3", "")
}

func TestComputeKpisRoundsMeanToThreeDecimals(t *testing.T) {
	rows := []PriceRow{
		kpiRow(1, "A", "1"),
		kpiRow(1, "B", "1"),
		kpiRow(1, "C", "2"),
	}

	kpis := ComputeKpis(rows)
	wantMetric(t, "mean", kpis.Mean, "1.333", "")
}

func TestTopNCheapest(t *testing.T) {
	rows := []PriceRow{
		kpiRow(2, "A", "5"),
		kpiRow(2, "B", "1"),
		kpiRow(1, "OLD", "0.1"), // prior date, excluded from ranking
		kpiRow(2, "C", "3"),
	}

	top := TopNCheapest(rows, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].StationName != "B" || top[0].Price.String() != "1" {
		t.Fatalf("expected B(1) first, got %s(%s)", top[0].StationName, top[0].Price)
	}
	if top[1].StationName != "C" || top[1].Price.String() != "3" {
		t.Fatalf("expected C(3) second, got %s(%s)", top[1].StationName, top[1].Price)
	}
}

func TestTopNCheapestStableTiesAndShortDatasets(t *testing.T) {
	rows := []PriceRow{
		kpiRow(1, "FIRST", "1.5"),
		kpiRow(1, "SECOND", "1.5"),
	}

	top := TopNCheapest(rows, 10)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	// Ties keep original row order.
	if top[0].StationName != "FIRST" || top[1].StationName != "SECOND" {
		t.Fatalf("tie order not stable: %v", top)
	}

	if got := TopNCheapest(rows, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
