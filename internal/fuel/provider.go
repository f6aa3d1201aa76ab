package fuel

import (
	"context"
	"time"
)

// SnapshotProvider abstracts the upstream fuel-price API: one call returns
// one snapshot of per-station price records.
type SnapshotProvider interface {
	Name() string
	Fetch(ctx context.Context) ([]StationPriceRecord, error)
}

// InsertResult reports the outcome of a fact batch write. Duplicates lists
// the key tuples rejected because a row already existed; their first-written
// prices are untouched.
type InsertResult struct {
	Inserted   int
	Duplicates []FactKey
}

// Warehouse is the contract the persistent star-schema store must satisfy.
// Facts are append-only; the read side gets an immutable joined projection.
type Warehouse interface {
	// Dimensions reads the active rows of all four dimension tables.
	Dimensions(ctx context.Context) (DimensionSet, error)

	// InsertFacts writes a fact batch with partial commit: rows whose
	// composite key already exists are rejected per-row, the rest commit.
	InsertFacts(ctx context.Context, facts []FactRow) (InsertResult, error)

	// JoinedWindow returns the fact+dimension join over the 7 days up to
	// ref, restricted to the given time-of-day bucket.
	JoinedWindow(ctx context.Context, ref time.Time, momentKey int) ([]PriceRow, error)
}
