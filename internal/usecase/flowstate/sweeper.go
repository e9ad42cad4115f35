package flowstate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper periodically deletes abandoned flow states. Reads already expire
// stale states; the sweep keeps guests who never come back from piling up.
type Sweeper struct {
	repo     Repository
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewSweeper(repo Repository, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{repo: repo, interval: interval, logger: logger}
}

func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 || s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done.Add(1)
	go func() {
		defer s.done.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
	s.logger.Info("flow sweeper started", "interval", s.interval.String())
}

// RunOnce performs a single sweep and logs the outcome.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	n, err := s.repo.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("flow sweep failed", "removed", n, "error", err.Error())
		return n
	}
	if n > 0 {
		s.logger.Info("expired flows removed", "count", n)
	}
	return n
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.done.Wait()
	s.cancel = nil
	s.logger.Info("flow sweeper stopped")
}
