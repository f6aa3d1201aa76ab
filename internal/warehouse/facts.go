package warehouse

import (
	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

// PartitionFacts splits a fact batch into rows safe to insert and rows whose
// composite key collides with an already-stored row (or with an earlier row
// of the same batch). Collisions are never written, so the first-inserted
// price stays unchanged; they surface in the run report instead of being
// silently ignored or overwritten.
func PartitionFacts(existing map[fuel.FactKey]bool, facts []fuel.FactRow) (fresh []fuel.FactRow, duplicates []fuel.FactKey) {
	seen := make(map[fuel.FactKey]bool, len(facts))
	for _, f := range facts {
		if existing[f.FactKey] || seen[f.FactKey] {
			duplicates = append(duplicates, f.FactKey)
			continue
		}
		seen[f.FactKey] = true
		fresh = append(fresh, f)
	}
	return fresh, duplicates
}
