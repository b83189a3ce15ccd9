package session

import (
	"context"
	"time"

	"github.com/wolfman30/saathi/pkg/logging"
)

const (
	DefaultMaxIdle       = time.Hour
	DefaultSweepInterval = time.Hour
)

// SweepObserver receives the outcome of each sweep.
type SweepObserver interface {
	ObserveSweep(removed, remaining int)
}

// Sweeper periodically evicts idle sessions from a Store.
type Sweeper struct {
	store    *Store
	logger   *logging.Logger
	observer SweepObserver
	now      func() time.Time
	interval time.Duration
	maxIdle  time.Duration
}

// NewSweeper creates a sweeper using the default interval and idle threshold.
func NewSweeper(store *Store, logger *logging.Logger) *Sweeper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		store:    store,
		logger:   logger,
		now:      time.Now,
		interval: DefaultSweepInterval,
		maxIdle:  DefaultMaxIdle,
	}
}

// WithInterval sets how often the sweep runs.
func (w *Sweeper) WithInterval(interval time.Duration) *Sweeper {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// WithMaxIdle sets how long a session may stay idle.
func (w *Sweeper) WithMaxIdle(maxIdle time.Duration) *Sweeper {
	if maxIdle > 0 {
		w.maxIdle = maxIdle
	}
	return w
}

// WithClock sets the time source used to age sessions.
func (w *Sweeper) WithClock(now func() time.Time) *Sweeper {
	if now != nil {
		w.now = now
	}
	return w
}

// WithObserver reports sweep results, e.g. to metrics.
func (w *Sweeper) WithObserver(observer SweepObserver) *Sweeper {
	w.observer = observer
	return w
}

// Start runs the sweep on every tick. Blocks until ctx is cancelled.
func (w *Sweeper) Start(ctx context.Context) {
	w.logger.Info("starting session sweeper",
		"interval", w.interval.String(),
		"max_idle", w.maxIdle.String(),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("session sweeper shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep and returns the number of evicted sessions.
func (w *Sweeper) RunOnce(ctx context.Context) int {
	if w == nil || w.store == nil {
		return 0
	}
	removed := w.store.Sweep(w.now(), w.maxIdle)
	remaining := w.store.Len()
	if w.observer != nil {
		w.observer.ObserveSweep(removed, remaining)
	}
	if removed > 0 {
		w.logger.Info("swept idle sessions", "removed", removed, "remaining", remaining)
	} else {
		w.logger.Debug("no idle sessions to sweep", "remaining", remaining)
	}
	return removed
}
