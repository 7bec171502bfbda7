package engage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// Pipeline is a single engagement pass.
type Pipeline interface {
	Run(ctx context.Context, params domain.Params) error
}

// Retention bounds the engagement ledger.
type Retention struct {
	MaxAge  time.Duration
	MaxRows int
}

// RunStatus summarizes the most recent pass.
type RunStatus struct {
	Runs      int           `json:"runs"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// Runner repeats a pipeline on an interval and keeps the ledger bounded.
type Runner struct {
	pipeline  Pipeline
	params    domain.Params
	ledger    domain.EngagementRepository
	retention Retention
	logger    *slog.Logger

	mu   sync.Mutex
	last RunStatus
}

// NewRunner creates a runner. ledger may be nil.
func NewRunner(pipeline Pipeline, params domain.Params, ledger domain.EngagementRepository, retention Retention, logger *slog.Logger) *Runner {
	return &Runner{
		pipeline:  pipeline,
		params:    params,
		ledger:    ledger,
		retention: retention,
		logger:    logger,
	}
}

// Start runs the pipeline immediately and then at every interval. Failed
// passes are logged and do not stop the loop. It blocks until ctx is
// cancelled.
func (r *Runner) Start(ctx context.Context, interval time.Duration) {
	r.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single pass followed by ledger cleanup.
func (r *Runner) RunOnce(ctx context.Context) {
	start := time.Now()
	err := r.pipeline.Run(ctx, r.params)

	r.mu.Lock()
	r.last = RunStatus{
		Runs:      r.last.Runs + 1,
		StartedAt: start.UTC(),
		Duration:  time.Since(start),
	}
	if err != nil {
		r.last.Error = err.Error()
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("engagement pass failed", "error", err)
	}

	r.cleanup(ctx)
}

// LastRun returns the status of the most recent pass.
func (r *Runner) LastRun() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Runner) cleanup(ctx context.Context) {
	if r.ledger == nil || (r.retention.MaxAge <= 0 && r.retention.MaxRows <= 0) {
		return
	}

	deleted, err := r.ledger.DeleteOldEngagements(ctx, r.retention.MaxAge, r.retention.MaxRows)
	if err != nil {
		r.logger.Error("ledger cleanup failed", "error", err)
	} else if deleted > 0 {
		r.logger.Info("ledger cleanup complete", "deleted", deleted)
	}
}
