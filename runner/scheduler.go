package runner

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers the daily update on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Ctx    context.Context
}

// NewScheduler creates a Scheduler. Runs never overlap: a run still going on
// when the next one is due makes that one skipped.
func NewScheduler(ctx context.Context, r *Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register adds the daily update at spec, a cron expression with seconds.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.dailyTask); err != nil {
		return fmt.Errorf("register daily update %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("scheduler-started")
}

// Stop stops the cron scheduler and waits for a running update.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("scheduler-stopped")
}

// RunNow executes the daily update immediately.
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("daily-update")
	res, err := s.Runner.Update(s.Ctx, "schedule")
	if err != nil {
		log.Printf("daily-update-failed err=%q", err)
	}
	if res != nil {
		log.Printf("daily-update-done days=%q", res.Book.Counts())
	}
}
