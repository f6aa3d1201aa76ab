package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

// Scheduler periodically triggers ingestion runs. Runs are executed
// sequentially on one gocron job, so no two runs overlap for the same
// date/moment pair.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *fuel.Service
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a new Scheduler.
func New(service *fuel.Service, interval time.Duration, log *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic ingestion job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 240
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.log.Info("scheduler: running ingestion job")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := s.service.RunIngestion(ctx, time.Now().UTC())
		if err != nil {
			s.log.WithError(err).Error("scheduler: ingestion run failed")
			return
		}
		s.log.WithFields(report.Fields()).Info("scheduler: ingestion job completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
