package fuel

import (
	"fmt"
	"sort"

	"github.com/canaryfuel/fuel-price-dashboard/internal/common"
)

// FilterCriteria is one immutable set of dashboard filters. Selection is a
// pure function of a dataset and a criteria value; no component carries
// mutable cross-call selection state.
type FilterCriteria struct {
	GeoLevel  GeoLevel
	GeoEntity string
	Brand     Brand
	Product   ProductGroup
}

// DefaultCriteria is the dashboard's initial selection.
var DefaultCriteria = FilterCriteria{
	GeoLevel:  GeoAutonomousCommunity,
	GeoEntity: "CANARIAS",
	Brand:     BrandAll,
	Product:   GroupGasolina95,
}

// ParseGeoLevel validates a geography level value.
func ParseGeoLevel(s string) (GeoLevel, error) {
	for _, l := range GeoLevels {
		if s == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown geography level %q", s)
}

// ParseBrand validates a brand filter value.
func ParseBrand(s string) (Brand, error) {
	if s == string(BrandAll) || s == string(BrandOther) {
		return Brand(s), nil
	}
	for _, b := range KnownBrands {
		if s == string(b) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown brand %q", s)
}

// ParseProductGroup validates a product group value.
func ParseProductGroup(s string) (ProductGroup, error) {
	for _, g := range ProductGroups {
		if s == string(g) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown product group %q", s)
}

// matchBrand applies the brand predicate to a station name: a named brand
// matches as a case-sensitive substring, OTRAS matches stations carrying none
// of the known brand tokens and TODAS matches everything.
func matchBrand(stationName string, brand Brand) bool {
	switch brand {
	case BrandAll:
		return true
	case BrandOther:
		tokens := make([]string, len(KnownBrands))
		for i, b := range KnownBrands {
			tokens[i] = string(b)
		}
		return !common.HasAny(stationName, tokens...)
	default:
		return common.HasAny(stationName, string(brand))
	}
}

// ApplyFilters returns the rows satisfying the conjunction of the geography,
// brand and product predicates. Pure and deterministic: the result preserves
// input order and the input is never mutated. An empty result is valid.
//
// groupKeys is the criteria's product group resolved to surrogate keys, as
// returned by Registry.GroupKeys.
func ApplyFilters(rows []PriceRow, crit FilterCriteria, groupKeys map[int]bool) []PriceRow {
	out := make([]PriceRow, 0, len(rows))
	for _, row := range rows {
		if row.geoValue(crit.GeoLevel) != crit.GeoEntity {
			continue
		}
		if !groupKeys[row.ProductKey] {
			continue
		}
		if !matchBrand(row.StationName, crit.Brand) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// DistinctEntities returns the sorted distinct values of the given geography
// level present in the dataset; it feeds the dashboard's entity selector.
func DistinctEntities(rows []PriceRow, level GeoLevel) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		v := row.geoValue(level)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
