package fuel

import (
	"fmt"
	"sort"
	"time"
)

// MomentForHour maps an hour of day (0-23) to its time-of-day bucket. The
// function is total: every hour belongs to exactly one bucket, with hour 0
// falling into Madrugada together with 1-5. The ingestion path and the read
// path both use it, so "current bucket" always means the same thing.
func MomentForHour(hour int) MomentID {
	switch {
	case hour == 12:
		return MomentMediodia
	case hour >= 6 && hour <= 11:
		return MomentManana
	case hour >= 13 && hour <= 19:
		return MomentTarde
	case hour >= 20 && hour <= 23:
		return MomentNoche
	default: // 0 and 1-5
		return MomentMadrugada
	}
}

// Registry resolves natural identifiers to surrogate keys against an
// in-memory index built once per batch from a dimension read. Lookups are
// O(1); the registry never touches the store after construction.
type Registry struct {
	dates    map[string]int
	stations map[int]int
	products []ProductRow
	byID     map[string]int
	moments  map[MomentID]int
	groups   map[ProductGroup]map[int]bool
}

// BuildRegistry indexes the active dimension rows and resolves the product
// display groups into the surrogate keys the warehouse currently holds.
// It fails if a moment or a grouped product is missing from the dimensions,
// since both are fixed enumerations the warehouse must carry.
func BuildRegistry(dims DimensionSet) (*Registry, error) {
	r := &Registry{
		dates:    make(map[string]int, len(dims.Dates)),
		stations: make(map[int]int, len(dims.Stations)),
		byID:     make(map[string]int, len(dims.Products)),
		moments:  make(map[MomentID]int, len(dims.Moments)),
		groups:   make(map[ProductGroup]map[int]bool, len(GroupProducts)),
	}

	for _, d := range dims.Dates {
		r.dates[dayKey(d.Day)] = d.DateKey
	}
	for _, s := range dims.Stations {
		r.stations[s.StationID] = s.StationKey
	}
	r.products = make([]ProductRow, len(dims.Products))
	copy(r.products, dims.Products)
	sort.Slice(r.products, func(i, j int) bool { return r.products[i].ProductKey < r.products[j].ProductKey })
	for _, p := range r.products {
		r.byID[p.ProductID] = p.ProductKey
	}
	for _, m := range dims.Moments {
		r.moments[m.MomentID] = m.MomentKey
	}

	for _, m := range Moments {
		if _, ok := r.moments[m]; !ok {
			return nil, fmt.Errorf("incomplete moment dimension: %q missing", m)
		}
	}

	for group, productIDs := range GroupProducts {
		keys := make(map[int]bool, len(productIDs))
		for _, id := range productIDs {
			key, ok := r.byID[id]
			if !ok {
				return nil, fmt.Errorf("product group %q: %w: %q", group, ErrProductNotFound, id)
			}
			keys[key] = true
		}
		r.groups[group] = keys
	}

	return r, nil
}

// ResolveDate returns the surrogate key for a calendar day. The timestamp is
// truncated to midnight before lookup.
func (r *Registry) ResolveDate(t time.Time) (int, error) {
	key, ok := r.dates[dayKey(t)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrDateNotFound, dayKey(t))
	}
	return key, nil
}

// ResolveStation returns the surrogate key for an upstream station id.
func (r *Registry) ResolveStation(stationID int) (int, error) {
	key, ok := r.stations[stationID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrStationNotFound, stationID)
	}
	return key, nil
}

// ResolveProduct returns the surrogate key for a product natural key.
func (r *Registry) ResolveProduct(productID string) (int, error) {
	key, ok := r.byID[productID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrProductNotFound, productID)
	}
	return key, nil
}

// ResolveMoment returns the surrogate key for a time-of-day bucket.
func (r *Registry) ResolveMoment(m MomentID) (int, error) {
	key, ok := r.moments[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMomentNotFound, m)
	}
	return key, nil
}

// Products returns the indexed product rows in surrogate-key order.
func (r *Registry) Products() []ProductRow {
	return r.products
}

// GroupKeys returns the surrogate key set a product group resolved to.
func (r *Registry) GroupKeys(group ProductGroup) map[int]bool {
	return r.groups[group]
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
