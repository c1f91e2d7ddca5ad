// Package scheduler runs the recurring fuel-feed synchronization. The
// feed vendor publishes a month's fuel logs continuously, so the sync
// pulls the current month on each tick and replaces nothing; records are
// appended like any other import.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"fvieira/frota-csv/internal/logging"
)

// SyncFunc pulls and persists the fuel feed for one month.
type SyncFunc func(ctx context.Context, month, year int) error

const syncTimeout = 5 * time.Minute

// Scheduler triggers the fuel-feed sync on a cron expression.
type Scheduler struct {
	cron *cron.Cron
	sync SyncFunc
	log  logging.Logger
}

// New builds a scheduler around sync.
func New(sync SyncFunc, logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Scheduler{
		cron: cron.New(),
		sync: sync,
		log:  logger,
	}
}

// Start registers the sync job under spec (standard five-field cron
// expression) and starts the timer.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSync); err != nil {
		return err
	}
	s.log.Info("Fuel feed sync scheduled", logging.Field{Key: "spec", Value: spec})
	s.cron.Start()
	return nil
}

// Stop halts the timer and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Fuel feed sync stopped")
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	now := time.Now()
	s.log.Info("Fuel feed sync started",
		logging.Field{Key: "month", Value: int(now.Month())},
		logging.Field{Key: "year", Value: now.Year()})

	if err := s.sync(ctx, int(now.Month()), now.Year()); err != nil {
		s.log.WithError(err).Error("Fuel feed sync failed")
		return
	}
	s.log.Info("Fuel feed sync finished")
}
