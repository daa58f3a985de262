package testutil

import (
	"errors"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// ManualScheduler is a watch.Scheduler whose tasks only fire when a test says so.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*ManualTask
	// Err, when set, is returned from Every instead of creating a task.
	Err error
	// FailOnce is returned from the next Every call only.
	FailOnce error
}

// ManualTask is a task created by ManualScheduler.
type ManualTask struct {
	Interval time.Duration
	// OnCancel runs inside Cancel, before the task is marked cancelled.
	OnCancel func()

	fn        func()
	mu        sync.Mutex
	cancelled bool
}

var errNilFunc = errors.New("testutil: nil task func")

// Every records a new task.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) (watch.Task, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	if err := s.FailOnce; err != nil {
		s.FailOnce = nil
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	if fn == nil {
		return nil, errNilFunc
	}
	task := &ManualTask{Interval: interval, fn: fn}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	return task, nil
}

// Active returns the tasks that have not been cancelled, oldest first.
func (s *ManualScheduler) Active() []*ManualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ManualTask
	for _, t := range s.tasks {
		if !t.Cancelled() {
			out = append(out, t)
		}
	}
	return out
}

// All returns every task ever created, oldest first.
func (s *ManualScheduler) All() []*ManualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ManualTask(nil), s.tasks...)
}

// FireAll fires each currently active task once, in creation order.
func (s *ManualScheduler) FireAll() {
	for _, t := range s.Active() {
		t.Fire()
	}
}

// Cancel marks the task cancelled. Safe to call more than once.
func (t *ManualTask) Cancel() {
	t.mu.Lock()
	already := t.cancelled
	t.mu.Unlock()
	if already {
		return
	}
	if t.OnCancel != nil {
		t.OnCancel()
	}
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

// Cancelled reports whether Cancel was called.
func (t *ManualTask) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Fire runs the task unless it was cancelled.
func (t *ManualTask) Fire() {
	if t.Cancelled() {
		return
	}
	t.fn()
}

// Run invokes the task func even after cancellation, simulating a firing
// that was already in flight when the task was cancelled.
func (t *ManualTask) Run() {
	t.fn()
}
