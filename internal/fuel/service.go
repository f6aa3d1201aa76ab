package fuel

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Service orchestrates ingestion runs and serves the dashboard read side.
type Service struct {
	warehouse Warehouse
	provider  SnapshotProvider
	log       *logrus.Logger
}

// NewService creates a new Service. The provider may be nil for read-only
// deployments (for example the batch bulk loader does not fetch).
func NewService(warehouse Warehouse, provider SnapshotProvider, log *logrus.Logger) *Service {
	return &Service{
		warehouse: warehouse,
		provider:  provider,
		log:       log,
	}
}

// RunIngestion executes one ingestion run at the given reference time: fetch
// a snapshot, build the registry from the warehouse dimensions, map the
// snapshot into fact rows and persist them. Per-row failures are collected in
// the returned report; only upstream or warehouse unavailability is fatal.
func (s *Service) RunIngestion(ctx context.Context, now time.Time) (*RunReport, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no snapshot provider configured")
	}

	records, err := s.provider.Fetch(ctx)
	if err != nil {
		s.log.WithError(err).WithField("provider", s.provider.Name()).Error("snapshot fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	reg, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}

	facts, report, err := MapSnapshot(reg, records, now)
	if err != nil {
		return report, err
	}

	result, err := s.warehouse.InsertFacts(ctx, facts)
	if err != nil {
		return report, fmt.Errorf("persisting facts: %w", err)
	}
	report.Duplicates = result.Duplicates

	entry := s.log.WithFields(report.Fields())
	if len(report.Duplicates) > 0 {
		entry.WithError(ErrDuplicateFact).Warn("ingestion run completed with duplicate facts rejected")
	} else {
		entry.Info("ingestion run completed")
	}
	return report, nil
}

// window reads the joined 7-day projection for now's time-of-day bucket.
func (s *Service) window(ctx context.Context, now time.Time) ([]PriceRow, *Registry, error) {
	reg, err := s.registry(ctx)
	if err != nil {
		return nil, nil, err
	}

	momentKey, err := reg.ResolveMoment(MomentForHour(now.Hour()))
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.warehouse.JoinedWindow(ctx, now, momentKey)
	if err != nil {
		return nil, nil, fmt.Errorf("reading price window: %w", err)
	}
	return rows, reg, nil
}

// Dashboard returns the filtered joined rows for the given criteria.
func (s *Service) Dashboard(ctx context.Context, now time.Time, crit FilterCriteria) ([]PriceRow, error) {
	rows, reg, err := s.window(ctx, now)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(rows, crit, reg.GroupKeys(crit.Product)), nil
}

// Kpis computes the KPI summary for the given criteria. An empty selection
// yields a report with HasData false, never an error.
func (s *Service) Kpis(ctx context.Context, now time.Time, crit FilterCriteria) (KpiReport, error) {
	filtered, err := s.Dashboard(ctx, now, crit)
	if err != nil {
		return KpiReport{}, err
	}
	return ComputeKpis(filtered), nil
}

// TopCheapest returns up to n cheapest stations on the most recent date of
// the filtered selection.
func (s *Service) TopCheapest(ctx context.Context, now time.Time, crit FilterCriteria, n int) ([]RankedStation, error) {
	filtered, err := s.Dashboard(ctx, now, crit)
	if err != nil {
		return nil, err
	}
	return TopNCheapest(filtered, n), nil
}

// Entities returns the distinct geography entities at the given level present
// in the current window.
func (s *Service) Entities(ctx context.Context, now time.Time, level GeoLevel) ([]string, error) {
	rows, _, err := s.window(ctx, now)
	if err != nil {
		return nil, err
	}
	return DistinctEntities(rows, level), nil
}

func (s *Service) registry(ctx context.Context) (*Registry, error) {
	dims, err := s.warehouse.Dimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}
	return BuildRegistry(dims)
}
