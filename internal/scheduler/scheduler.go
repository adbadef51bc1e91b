package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"talentnest/internal/jobs"
	"talentnest/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// Schedules holds the cron expressions, seconds field optional.
type Schedules struct {
	Reconcile string
}

// NewScheduler registers every job. An unparsable schedule is an error.
func NewScheduler(jobRunner *jobs.JobRunner, schedules Schedules) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithParser(cron.NewParser(
			cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor,
		)),
	)

	s := &Scheduler{cron: c, jobs: jobRunner}
	if _, err := s.cron.AddFunc(schedules.Reconcile, s.jobs.ReconcileVerifiedFlags); err != nil {
		return nil, fmt.Errorf("register ReconcileVerifiedFlags: %w", err)
	}

	logger.Info("Cron jobs registered", "entries", len(s.cron.Entries()))
	return s, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries is the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
