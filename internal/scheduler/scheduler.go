// Package scheduler runs the periodic profile-view flush.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Flusher moves buffered views into the record store.
type Flusher interface {
	Flush(ctx context.Context) (int64, error)
}

// Scheduler wraps robfig/cron and owns the flush job.
type Scheduler struct {
	cron    *cron.Cron
	flusher Flusher
	spec    string // cron spec, e.g. "@every 30s"
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Scheduler that flushes on spec. Each run is bounded by timeout.
func New(flusher Flusher, spec string, timeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		flusher: flusher,
		spec:    spec,
		timeout: timeout,
		logger:  logger,
	}
}

// Start registers the flush job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("Views flush scheduled", zap.String("spec", s.spec))
	return nil
}

// Stop halts the cron loop and waits for a running flush to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Views flush stopped")
}

// RunOnce performs one flush and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.flusher.Flush(ctx)
	if err != nil {
		s.logger.Warn("Views flush incomplete", zap.Int64("flushed", n), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Debug("Views flushed", zap.Int64("flushed", n))
	}
}
