package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/metrics"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

const (
	defaultSpec    = "0 9 * * *"
	rebuildTimeout = 2 * time.Minute
	// readyFailureLimit is how many consecutive failed rebuilds flip readiness off.
	readyFailureLimit = 3
)

var errNoScheduler = errors.New("poller: no scheduler configured")

// Rebuilder re-derives the day's watch set.
type Rebuilder interface {
	Rebuild(ctx context.Context, filter watch.Filter) error
}

// DailyScheduler registers a job on a cron spec.
type DailyScheduler interface {
	Daily(spec string, fn func()) (watch.Task, error)
}

// Poller runs the daily rebuild: once on boot, then on the configured cron spec.
type Poller struct {
	rebuilder Rebuilder
	scheduler DailyScheduler
	filter    watch.Filter
	spec      string
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	ctx      context.Context
	task     watch.Task
	wg       sync.WaitGroup
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the daily rebuild.
type Status struct {
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastSuccess         time.Time `json:"last_success"`
}

// IsReady reports whether a rebuild has succeeded and the job is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

// New constructs a Poller. An empty spec means 09:00 daily.
func New(rebuilder Rebuilder, scheduler DailyScheduler, filter watch.Filter, spec string, logger *slog.Logger, recorder *metrics.Recorder) *Poller {
	if spec == "" {
		spec = defaultSpec
	}
	if filter == nil {
		filter = watch.AllGames
	}
	return &Poller{
		rebuilder: rebuilder,
		scheduler: scheduler,
		filter:    filter,
		spec:      spec,
		logger:    logger,
		metrics:   recorder,
		now:       time.Now,
	}
}

// Start registers the daily job and kicks off a boot rebuild in the background.
// Calling Start again is a no-op.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return nil
	}
	if p.scheduler == nil {
		return errNoScheduler
	}

	p.ctx = ctx
	task, err := p.scheduler.Daily(p.spec, func() { p.rebuildOnce(p.ctx) })
	if err != nil {
		return err
	}
	p.task = task
	p.started = true

	logging.Info(p.logger, "daily rebuild scheduled", "spec", p.spec)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		// Initial rebuild so a restart mid-day picks the games back up.
		p.rebuildOnce(ctx)
	}()
	return nil
}

// Stop cancels the daily job and waits for the boot rebuild to finish.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		p.startMu.Lock()
		task := p.task
		p.startMu.Unlock()
		if task != nil {
			task.Cancel()
		}
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logging.Info(p.logger, "daily rebuild stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RebuildNow runs one rebuild immediately, outside the daily schedule, and
// records it in Status like any other attempt.
func (p *Poller) RebuildNow(ctx context.Context) error {
	return p.rebuildOnce(ctx)
}

func (p *Poller) rebuildOnce(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, rebuildTimeout)
	defer cancel()

	start := p.now()
	p.recordAttempt(start)
	err := p.rebuilder.Rebuild(ctx, p.filter)
	elapsed := p.now().Sub(start)
	p.metrics.RecordRebuild(elapsed, err)

	if err != nil {
		logging.Error(p.logger, "daily rebuild failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		p.recordFailure(err, start)
		return err
	}
	p.recordSuccess(start)
	logging.Info(p.logger, "daily rebuild complete", logging.FieldDurationMS, elapsed.Milliseconds())
	return nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the rebuild job's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
