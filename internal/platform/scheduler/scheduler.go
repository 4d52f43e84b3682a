// Package scheduler runs jobs on cron schedules.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler evaluating standard 5-field specs in loc.
// A run that is still in progress when the next one fires is skipped.
func New(loc *time.Location) *Scheduler {
	logger := slogAdapter{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

// AddJob registers a new job with cron schedule
// Schedule examples:
//   - "5 6 * * MON-FRI"    - 6:05 AM weekdays
//   - "@hourly"            - Every hour
//   - "@every 30s"         - Every 30 seconds
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		start := time.Now()
		slog.Debug("running job", "job", job.Name())

		if err := job.Run(); err != nil {
			slog.Error("job failed", "job", job.Name(), "latency", time.Since(start), "error", err)
			return
		}
		slog.Info("job completed", "job", job.Name(), "latency", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", schedule, job.Name(), err)
	}

	slog.Info("job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// Next returns the next run time of every registered job.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Next)
	}
	return out
}

// slogAdapter は cron.Logger を slog に流します。
type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
