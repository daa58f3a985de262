package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type watchStats struct {
	rebuilds    int
	rebuildErrs int
	ticks       int
	tickErrors  int
	transitions int
	goals       int
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// the game watch, and forwards to OpenTelemetry instruments when configured.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*endpointStats
	watch    watchStats
	commands map[string]int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*endpointStats),
		commands: make(map[string]int),
		otel:     otel,
	}
}

// RecordUpstreamCall increments counters for a stats API call and stores the last observed latency.
func (r *Recorder) RecordUpstreamCall(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamCall(endpoint, duration, err)
	}
}

// RecordRebuild tracks one daily rebuild of the watch tables.
func (r *Recorder) RecordRebuild(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.watch.rebuilds++
	if err != nil {
		r.watch.rebuildErrs++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRebuild(duration, err)
	}
}

// RecordWatchTick tracks one firing of a game check task.
func (r *Recorder) RecordWatchTick(table string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.watch.ticks++
	if err != nil {
		r.watch.tickErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordWatchTick(table, duration, err)
	}
}

// RecordTransition tracks a game moving between watch tables. An empty to means removal.
func (r *Recorder) RecordTransition(from, to string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.watch.transitions++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTransition(from, to)
	}
}

// RecordGoalsPublished tracks goals handed to a sink.
func (r *Recorder) RecordGoalsPublished(sink string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.watch.goals += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGoals(sink, count)
	}
}

// RecordCommand tracks a handled chat command.
func (r *Recorder) RecordCommand(command string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.commands[command]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCommand(command, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// UpstreamCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) UpstreamCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) UpstreamErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// LastCallLatency returns the last recorded latency for an endpoint call.
func (r *Recorder) LastCallLatency(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastCallLatency
}

// CommandCount returns how many times a command was dispatched.
func (r *Recorder) CommandCount(command string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commands[command]
}

// Snapshot returns a copy of the current stats for the endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// WatchSnapshot is a copy of the game watch counters.
type WatchSnapshot struct {
	Rebuilds    int
	RebuildErrs int
	Ticks       int
	TickErrors  int
	Transitions int
	Goals       int
}

func (r *Recorder) WatchSnapshot() WatchSnapshot {
	if r == nil {
		return WatchSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return WatchSnapshot{
		Rebuilds:    r.watch.rebuilds,
		RebuildErrs: r.watch.rebuildErrs,
		Ticks:       r.watch.ticks,
		TickErrors:  r.watch.tickErrors,
		Transitions: r.watch.transitions,
		Goals:       r.watch.goals,
	}
}
