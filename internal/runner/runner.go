// Package runner drives an aco.Engine: it paces iterations, stops on
// cancellation, iteration budget or stagnation, and serializes configuration
// changes with the iteration loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/internal/logging"
	"github.com/katalvlaran/antroute/internal/metrics"
	"github.com/katalvlaran/antroute/matrix"
)

// Config bounds a Run. Zero values mean unbounded / unpaced.
type Config struct {
	Iterations          int
	IterationsPerSecond float64
	StagnationLimit     int
}

// StopReason tells why Run returned.
type StopReason string

// Stop reasons.
const (
	StopCanceled   StopReason = "canceled"
	StopIterations StopReason = "iterations"
	StopStagnation StopReason = "stagnation"
)

// Runner owns an engine. Every engine access goes through its lock, so updates
// submitted while an iteration runs wait for it to finish.
type Runner struct {
	mu       sync.RWMutex
	engine   *aco.Engine
	cfg      Config
	log      *slog.Logger
	metrics  *metrics.Recorder
	last     aco.Stats
	hasStats bool
	stagnant int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger (default: no-op).
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records every iteration on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = m }
}

// New wraps e.
func New(e *aco.Engine, cfg Config, opts ...Option) *Runner {
	r := &Runner{engine: e, cfg: cfg, log: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.publishSize()

	return r
}

// Step runs exactly one iteration.
func (r *Runner) Step() (aco.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stepLocked()
}

func (r *Runner) stepLocked() (aco.Stats, error) {
	var (
		before = r.engine.Graph().BestPathLength()
		start  = time.Now()
	)
	st, err := r.engine.RunIteration()
	if err != nil {
		if r.metrics != nil {
			r.metrics.ObserveFailure(failureReason(err))
		}
		return aco.Stats{}, err
	}
	elapsed := time.Since(start)

	improved := st.BestLength < before
	if improved {
		r.stagnant = 0
	} else {
		r.stagnant++
	}
	r.last, r.hasStats = st, true

	if r.metrics != nil {
		r.metrics.Observe(st, improved, elapsed)
		r.metrics.SetPheromoneTotal(r.engine.Pheromones().Total())
	}
	r.log.Debug("iteration",
		"iteration", r.engine.Iteration(),
		"best", st.BestLength,
		"min", st.MinLength,
		"avg", st.AvgLength,
		"elapsed", elapsed,
	)
	if improved {
		r.log.Info("new best tour",
			"iteration", r.engine.Iteration(),
			"best", st.BestLength,
		)
	}

	return st, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, aco.ErrSizeMismatch):
		return "size_mismatch"
	case errors.Is(err, aco.ErrIterationInProgress):
		return "in_progress"
	default:
		return "other"
	}
}

// Run iterates until ctx is canceled, the iteration budget is spent or the
// champion has not improved for StagnationLimit iterations. Cancellation is a
// normal stop, not an error.
func (r *Runner) Run(ctx context.Context) (StopReason, error) {
	var tick <-chan time.Time
	if r.cfg.IterationsPerSecond > 0 {
		ticker := time.NewTicker(tickInterval(r.cfg.IterationsPerSecond))
		defer ticker.Stop()
		tick = ticker.C
	}

	r.log.Info("run started",
		"iterations", r.cfg.Iterations,
		"iterations_per_second", r.cfg.IterationsPerSecond,
		"stagnation_limit", r.cfg.StagnationLimit,
	)

	done := 0
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return r.stop(StopCanceled, done), nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return r.stop(StopCanceled, done), nil
		}

		r.mu.Lock()
		_, err := r.stepLocked()
		stagnant := r.stagnant
		r.mu.Unlock()
		if err != nil {
			r.log.Error("iteration failed", "error", err)
			return "", fmt.Errorf("run: %w", err)
		}
		done++

		if r.cfg.Iterations > 0 && done >= r.cfg.Iterations {
			return r.stop(StopIterations, done), nil
		}
		if r.cfg.StagnationLimit > 0 && stagnant >= r.cfg.StagnationLimit {
			return r.stop(StopStagnation, done), nil
		}
	}
}

// tickInterval converts a positive rate into a ticker period. Rates above one
// per nanosecond round down to zero, which time.NewTicker rejects.
func tickInterval(perSecond float64) time.Duration {
	d := time.Duration(float64(time.Second) / perSecond)
	if d < time.Nanosecond {
		return time.Nanosecond
	}

	return d
}

func (r *Runner) stop(reason StopReason, done int) StopReason {
	r.mu.RLock()
	best := r.engine.Graph().BestPathLength()
	r.mu.RUnlock()
	r.log.Info("run stopped", "reason", string(reason), "iterations", done, "best", best)

	return reason
}

// Pheromones returns a copy of the current trail matrix.
func (r *Runner) Pheromones() *matrix.Dense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.engine.Pheromones().Current()
}

func (r *Runner) publishSize() {
	if r.metrics == nil {
		return
	}
	r.metrics.SetProblemSize(r.engine.Options().NumAnts, r.engine.Graph().NumVertices())
}
