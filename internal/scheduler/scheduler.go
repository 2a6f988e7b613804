package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
)

// Resumer reactivates paused subscriptions whose pause window has ended.
type Resumer interface {
	ResumeDue(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	resumer Resumer
	timeout time.Duration
	now     func() time.Time
}

// New registers the resume job under spec, a five field cron expression or
// a descriptor such as "@every 1h".
func New(spec string, resumer Resumer) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		resumer: resumer,
		timeout: time.Minute,
		now:     time.Now,
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid resume schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.Info("scheduler stopped")
	case <-ctx.Done():
		logger.Warn("scheduler stop timed out")
	}
}

// RunOnce performs a single resume pass.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resumed, err := s.resumer.ResumeDue(ctx, s.now())
	if err != nil {
		logger.Error("scheduled resume failed", "error", err)
		return resumed
	}

	if resumed > 0 {
		logger.Info("paused subscriptions resumed", "count", resumed)
	} else {
		logger.Debug("no paused subscriptions due")
	}
	return resumed
}
