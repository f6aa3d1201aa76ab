package warehouse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

func fact(dateKey, stationKey, productKey, momentKey int, price string) fuel.FactRow {
	return fuel.FactRow{
		FactKey: fuel.FactKey{
			DateKey:    dateKey,
			StationKey: stationKey,
			ProductKey: productKey,
			MomentKey:  momentKey,
		},
		Price:      decimal.RequireFromString(price),
		LoadAt:     time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		IsReliable: true,
	}
}

func TestPartitionFactsRejectsStoredDuplicates(t *testing.T) {
	stored := fact(3, 1, 6, 2, "1.234")
	existing := map[fuel.FactKey]bool{stored.FactKey: true}

	batch := []fuel.FactRow{
		fact(3, 1, 6, 2, "1.999"), // collides with the stored row
		fact(3, 2, 6, 2, "1.300"),
	}

	fresh, duplicates := PartitionFacts(existing, batch)
	if len(fresh) != 1 {
		t.Fatalf("expected 1 fresh row, got %d", len(fresh))
	}
	if fresh[0].StationKey != 2 {
		t.Fatalf("expected station key 2 to survive, got %d", fresh[0].StationKey)
	}
	if len(duplicates) != 1 || duplicates[0] != stored.FactKey {
		t.Fatalf("expected duplicate %+v, got %v", stored.FactKey, duplicates)
	}

	// The colliding row is never part of the insert set, so the
	// first-written price stays unchanged by construction.
	for _, f := range fresh {
		if f.FactKey == stored.FactKey {
			t.Fatal("colliding key must not be re-inserted")
		}
	}
}

func TestPartitionFactsRejectsIntraBatchDuplicates(t *testing.T) {
	batch := []fuel.FactRow{
		fact(3, 1, 6, 2, "1.234"),
		fact(3, 1, 6, 2, "1.235"),
	}

	fresh, duplicates := PartitionFacts(nil, batch)
	if len(fresh) != 1 {
		t.Fatalf("expected 1 fresh row, got %d", len(fresh))
	}
	if fresh[0].Price.String() != "1.234" {
		t.Fatalf("expected the first row to win, got %s", fresh[0].Price)
	}
	if len(duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(duplicates))
	}
}

func TestPartitionFactsEmptyBatch(t *testing.T) {
	fresh, duplicates := PartitionFacts(nil, nil)
	if len(fresh) != 0 || len(duplicates) != 0 {
		t.Fatalf("expected empty partitions, got %d/%d", len(fresh), len(duplicates))
	}
}
