package fuel

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Metric is one summary statistic over the most recent snapshot, plus its
// delta against the prior days. Value is nil when the most-recent partition
// is empty; Delta is nil when either partition is empty (for example on the
// very first ingestion, when there are no prior days to compare against).
type Metric struct {
	Value *decimal.Decimal `json:"value"`
	Delta *decimal.Decimal `json:"delta"`
}

// KpiReport carries the dashboard summary statistics. A report over an empty
// dataset has HasData false and all metrics nil; that is a valid "no data"
// result, not an error.
type KpiReport struct {
	HasData bool   `json:"hasData"`
	Max     Metric `json:"max"`
	Min     Metric `json:"min"`
	Mean    Metric `json:"mean"`
}

// partition holds max/min/mean over one side of the recent/prior split.
type partition struct {
	max, min, mean decimal.Decimal
	hasData        bool
}

func summarize(rows []PriceRow) partition {
	if len(rows) == 0 {
		return partition{}
	}

	max := rows[0].Price
	min := rows[0].Price
	sum := decimal.Zero
	for _, r := range rows {
		if r.Price.GreaterThan(max) {
			max = r.Price
		}
		if r.Price.LessThan(min) {
			min = r.Price
		}
		sum = sum.Add(r.Price)
	}

	return partition{
		max:     max,
		min:     min,
		mean:    sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(3),
		hasData: true,
	}
}

// splitRecent partitions rows into those on the maximum DateKey present and
// all earlier rows, preserving input order within each partition.
func splitRecent(rows []PriceRow) (recent, prior []PriceRow) {
	if len(rows) == 0 {
		return nil, nil
	}

	maxDateKey := rows[0].DateKey
	for _, r := range rows {
		if r.DateKey > maxDateKey {
			maxDateKey = r.DateKey
		}
	}

	for _, r := range rows {
		if r.DateKey == maxDateKey {
			recent = append(recent, r)
		} else {
			prior = append(prior, r)
		}
	}
	return recent, prior
}

func metric(recent, prior partition, pick func(partition) decimal.Decimal) Metric {
	var m Metric
	if !recent.hasData {
		return m
	}
	v := pick(recent)
	m.Value = &v
	if prior.hasData {
		d := v.Sub(pick(prior)).Round(3)
		m.Delta = &d
	}
	return m
}

// ComputeKpis computes max/min/mean price over the most recent snapshot of
// the filtered dataset and their deltas against the prior days. Empty input
// and an empty prior partition are both valid; the affected values are nil
// rather than an error.
func ComputeKpis(rows []PriceRow) KpiReport {
	recentRows, priorRows := splitRecent(rows)
	recent := summarize(recentRows)
	prior := summarize(priorRows)

	return KpiReport{
		HasData: recent.hasData,
		Max:     metric(recent, prior, func(p partition) decimal.Decimal { return p.max }),
		Min:     metric(recent, prior, func(p partition) decimal.Decimal { return p.min }),
		Mean:    metric(recent, prior, func(p partition) decimal.Decimal { return p.mean }),
	}
}

// TopNCheapest ranks the most-recent-date rows ascending by price and returns
// up to n entries. The sort is stable, so ties keep their original row order.
func TopNCheapest(rows []PriceRow, n int) []RankedStation {
	if n <= 0 {
		return nil
	}

	recent, _ := splitRecent(rows)
	sorted := make([]PriceRow, len(recent))
	copy(sorted, recent)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]RankedStation, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, RankedStation{StationName: r.StationName, Price: r.Price})
	}
	return out
}
