// Package checks runs named connectivity checks against the pipeline's
// dependencies and records their outcomes.
package checks

import (
	"context"
	"sync"
	"time"

	"call-pipeline-diagnostics/internal/observability/logging"
	"call-pipeline-diagnostics/internal/observability/metrics"
)

// Check is one named connectivity check.
type Check struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Runner executes a fixed set of checks and tracks their latest outcomes.
type Runner struct {
	checks  []Check
	metrics *metrics.Metrics

	mu     sync.Mutex
	lastOK map[string]bool
}

// NewRunner creates a runner over the given checks.
func NewRunner(checks []Check) *Runner {
	return &Runner{
		checks:  checks,
		metrics: metrics.DefaultMetrics,
		lastOK:  make(map[string]bool, len(checks)),
	}
}

// RunAll runs every check once, serially, and reports whether all passed.
func (r *Runner) RunAll(ctx context.Context) bool {
	allOK := true
	for _, c := range r.checks {
		if !r.runOne(ctx, c) {
			allOK = false
		}
	}
	return allOK
}

func (r *Runner) runOne(ctx context.Context, c Check) bool {
	logger := logging.WithCheck(c.Name)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.metrics.ChecksInFlight.Inc()
	start := time.Now()
	err := c.Run(checkCtx)
	elapsed := time.Since(start)
	r.metrics.ChecksInFlight.Dec()
	r.metrics.RecordCheck(c.Name, err, elapsed.Seconds())

	r.mu.Lock()
	r.lastOK[c.Name] = err == nil
	r.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("Check failed")
		return false
	}
	logger.Info().Dur("elapsed", elapsed).Msg("Check passed")
	return true
}

// Healthy reports whether the last run of every check passed. Before the
// first run it reports false.
func (r *Runner) Healthy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lastOK) < len(r.checks) {
		return false
	}
	for _, ok := range r.lastOK {
		if !ok {
			return false
		}
	}
	return true
}

// Loop runs all checks on the given interval until the context is
// canceled. The first round runs immediately.
func (r *Runner) Loop(ctx context.Context, interval time.Duration) {
	r.RunAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunAll(ctx)
		}
	}
}
