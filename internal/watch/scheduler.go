package watch

import "time"

// Task is a cancellable recurring job. Cancel is idempotent.
type Task interface {
	Cancel()
}

// Scheduler runs fn every interval until the returned task is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (Task, error)
}
