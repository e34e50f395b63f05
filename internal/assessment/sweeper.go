package assessment

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically drops idle assessments from a Registry.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper for registry. If interval is <= 0, it
// defaults to one minute.
func NewSweeper(registry *Registry, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		registry: registry,
		interval: interval,
		logger:   registry.logger,
	}
}

// Run sweeps until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce performs a single sweep and returns the number of assessments
// dropped.
func (s *Sweeper) RunOnce() int {
	n := s.registry.Sweep()
	if n > 0 {
		s.logger.Info("expired idle assessments", "count", n, "active", s.registry.Len())
	}
	return n
}
