package fuel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ParseFailure records one price field that could not be parsed.
type ParseFailure struct {
	StationID int    `json:"stationId"`
	ProductID string `json:"productId"`
	Raw       string `json:"raw"`
}

// RunReport aggregates the per-row outcomes of one ingestion run. Resolution
// and parse failures are collected here instead of aborting the batch;
// partial ingestion is the intended degraded mode.
type RunReport struct {
	RunID     uuid.UUID `json:"runId"`
	StartedAt time.Time `json:"startedAt"`

	Facts           int            `json:"facts"`
	OutOfScope      int            `json:"outOfScope"`
	UnknownStations []int          `json:"unknownStations,omitempty"`
	ParseFailures   []ParseFailure `json:"parseFailures,omitempty"`
	Duplicates      []FactKey      `json:"duplicates,omitempty"`
}

// Fields renders the report counts as structured log fields.
func (r *RunReport) Fields() logrus.Fields {
	return logrus.Fields{
		"runId":           r.RunID,
		"facts":           r.Facts,
		"outOfScope":      r.OutOfScope,
		"unknownStations": len(r.UnknownStations),
		"parseFailures":   len(r.ParseFailures),
		"duplicates":      len(r.Duplicates),
	}
}

// ParsePrice converts an upstream locale-formatted price ("1,234", decimal
// comma) into a decimal value. A value containing a period is rejected: the
// upstream contract is a decimal-comma locale, so a period means the field is
// malformed rather than differently formatted. Negative prices are rejected.
func ParsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrPriceParse)
	}
	if strings.Contains(raw, ".") {
		return decimal.Zero, fmt.Errorf("%w: unexpected period in %q", ErrPriceParse, raw)
	}

	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrPriceParse, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative value %q", ErrPriceParse, raw)
	}
	return d, nil
}

// inScope reports whether the record's province is one of the Canary
// provinces.
func inScope(provinceID string) bool {
	for _, p := range InScopeProvinces {
		if provinceID == p {
			return true
		}
	}
	return false
}

// MapSnapshot transforms one upstream snapshot into the fact rows of one
// ingestion run. The reference time is explicit so runs are deterministic:
// DateKey comes from now truncated to its calendar day and MomentKey from
// now's time-of-day bucket.
//
// Out-of-scope provinces are dropped silently. An unknown station skips that
// record; a malformed price skips only that fact row. Both are recorded in
// the returned report, never raised.
func MapSnapshot(reg *Registry, records []StationPriceRecord, now time.Time) ([]FactRow, *RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New(),
		StartedAt: now,
	}

	dateKey, err := reg.ResolveDate(now)
	if err != nil {
		return nil, report, err
	}
	momentKey, err := reg.ResolveMoment(MomentForHour(now.Hour()))
	if err != nil {
		return nil, report, err
	}

	var facts []FactRow
	for _, rec := range records {
		if !inScope(rec.ProvinceID) {
			report.OutOfScope++
			continue
		}

		stationID, err := strconv.Atoi(rec.StationID)
		if err != nil {
			report.ParseFailures = append(report.ParseFailures, ParseFailure{
				ProductID: "IDEESS",
				Raw:       rec.StationID,
			})
			continue
		}

		stationKey, err := reg.ResolveStation(stationID)
		if err != nil {
			report.UnknownStations = append(report.UnknownStations, stationID)
			continue
		}

		for _, product := range reg.Products() {
			raw, ok := rec.Prices[product.ProductID]
			if !ok || raw == "" {
				continue
			}

			price, err := ParsePrice(raw)
			if err != nil {
				report.ParseFailures = append(report.ParseFailures, ParseFailure{
					StationID: stationID,
					ProductID: product.ProductID,
					Raw:       raw,
				})
				continue
			}

			facts = append(facts, FactRow{
				FactKey: FactKey{
					DateKey:    dateKey,
					StationKey: stationKey,
					ProductKey: product.ProductKey,
					MomentKey:  momentKey,
				},
				Price:      price,
				LoadAt:     now,
				IsReliable: true,
			})
		}
	}

	report.Facts = len(facts)
	return facts, report, nil
}
