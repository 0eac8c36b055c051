package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/etnz/supplycurve/config"
	"github.com/etnz/supplycurve/store"
	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the batch on a cron schedule, so that the current date
// marker of the charts stays current.
type Scheduler struct {
	Cron     *cron.Cron
	Config   *config.Config
	Recorder store.Recorder
	Ctx      context.Context

	// Now returns the current date of each run.
	Now func() time.Time
}

// NewScheduler creates a new Scheduler, the schedule is a cron spec with seconds.
func NewScheduler(ctx context.Context, cfg *config.Config, rec store.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Config:   cfg,
		Recorder: rec,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// Register adds the batch task on cfg.Schedule.
func (s *Scheduler) Register() error {
	if _, err := s.Cron.AddFunc(s.Config.Schedule, s.RunNow); err != nil {
		return fmt.Errorf("register batch task %q: %w", s.Config.Schedule, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("scheduler started: %s", s.Config.Schedule)
}

// Stop stops the cron scheduler and waits for a running batch to complete.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("scheduler stopped")
}

// RunNow runs the batch immediately.
func (s *Scheduler) RunNow() {
	log.Println("running batch")
	reports, err := Run(s.Ctx, s.Config, s.Recorder, s.Now())
	if err != nil {
		log.Printf("batch: %v", err)
	}
	done := 0
	for _, r := range reports {
		if r.Err == nil && r.Coin != "" {
			done++
		}
	}
	log.Printf("batch done: %d/%d coins", done, len(s.Config.Coins))
}
