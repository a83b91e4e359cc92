package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sweepRunTimeout = time.Minute

// Sweeper removes expired records and reports how many it removed.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// SweepTarget names a Sweeper for logging.
type SweepTarget struct {
	Name    string
	Sweeper Sweeper
}

// SweepScheduler periodically purges expired reset tokens and OTP codes.
type SweepScheduler struct {
	cron     *cron.Cron
	interval time.Duration
	targets  []SweepTarget
}

func NewSweepScheduler(interval time.Duration, targets ...SweepTarget) *SweepScheduler {
	return &SweepScheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		interval: interval,
		targets:  targets,
	}
}

// Start registers the sweep job and starts the cron goroutine.
func (s *SweepScheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepRunTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		logger.Error("Failed to add cron job for expired record sweep", err, map[string]interface{}{
			"spec": spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Sweep scheduler started", map[string]interface{}{
		"interval": s.interval.String(),
		"targets":  len(s.targets),
	})
	return nil
}

// RunOnce sweeps every target. Failures are logged and do not stop the
// remaining targets.
func (s *SweepScheduler) RunOnce(ctx context.Context) map[string]int {
	removed := make(map[string]int, len(s.targets))
	for _, target := range s.targets {
		n, err := target.Sweeper.SweepExpired(ctx)
		if err != nil {
			logger.Error("Failed to sweep expired records", err, map[string]interface{}{
				"target": target.Name,
			})
			continue
		}
		removed[target.Name] = n
		if n > 0 {
			logger.Info("Swept expired records", map[string]interface{}{
				"target":  target.Name,
				"removed": n,
			})
		}
	}
	return removed
}

// Stop halts the schedule and waits for a running sweep to finish or for
// ctx to end.
func (s *SweepScheduler) Stop(ctx context.Context) error {
	logger.Info("Stopping sweep scheduler...")
	done := s.cron.Stop()

	select {
	case <-done.Done():
		logger.Info("Sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
