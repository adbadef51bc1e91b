package jobs

import (
	"context"
	"time"

	"talentnest/internal/logger"
)

// Reconciler repairs artisan verified flags from approved requests.
type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reconciler Reconciler
	timeout    time.Duration
}

func NewJobRunner(reconciler Reconciler) *JobRunner {
	return &JobRunner{reconciler: reconciler, timeout: 2 * time.Minute}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
}

// ReconcileVerifiedFlags is the cron entry point.
func (jr *JobRunner) ReconcileVerifiedFlags() {
	jr.runWithRecovery("ReconcileVerifiedFlags", func(ctx context.Context) error {
		n, err := jr.reconciler.Reconcile(ctx)
		if err != nil {
			return err
		}
		logger.Info("Verified flags reconciled", "corrected", n)
		return nil
	})
}
