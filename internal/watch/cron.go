package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
)

// CronScheduler runs watch tasks and the daily rebuild on a robfig/cron runner.
// Each job is wrapped so an overlapping firing is skipped and a panic is
// logged instead of killing the process.
type CronScheduler struct {
	cron  *cron.Cron
	chain cron.Chain
}

// NewCronScheduler builds a scheduler evaluating daily specs in loc.
func NewCronScheduler(loc *time.Location, logger *slog.Logger) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	cronLogger := logging.CronLogger(logger)
	return &CronScheduler{
		cron:  cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger)),
		chain: cron.NewChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)),
	}
}

// Every schedules fn at a fixed interval. Sub-second intervals round up to one second.
func (s *CronScheduler) Every(interval time.Duration, fn func()) (Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("watch: invalid interval %s", interval)
	}
	id := s.cron.Schedule(cron.Every(interval), s.chain.Then(cron.FuncJob(fn)))
	return &cronTask{cron: s.cron, id: id}, nil
}

// Daily schedules fn on a standard five-field cron spec.
func (s *CronScheduler) Daily(spec string, fn func()) (Task, error) {
	id, err := s.cron.AddJob(spec, s.chain.Then(cron.FuncJob(fn)))
	if err != nil {
		return nil, fmt.Errorf("watch: daily spec %q: %w", spec, err)
	}
	return &cronTask{cron: s.cron, id: id}, nil
}

// Start begins firing scheduled jobs in background goroutines.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the runner and waits for running jobs until ctx is done.
func (s *CronScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len reports how many jobs are registered.
func (s *CronScheduler) Len() int {
	return len(s.cron.Entries())
}

type cronTask struct {
	cron *cron.Cron
	id   cron.EntryID
	once sync.Once
}

func (t *cronTask) Cancel() {
	t.once.Do(func() {
		t.cron.Remove(t.id)
	})
}
