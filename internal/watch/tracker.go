package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/timeutil"
)

// ErrAlreadyWatched is returned by Watch for a game that is already tracked.
var ErrAlreadyWatched = errors.New("watch: game already tracked")

// StatsClient is the slice of the stats API the tracker polls.
type StatsClient interface {
	Schedule(ctx context.Context, q statsapi.ScheduleQuery) (statsapi.Schedule, error)
	GameFeed(ctx context.Context, id int) (statsapi.GameFeed, error)
	GameDiff(ctx context.Context, id int, watermark string) ([]statsapi.DiffContainer, error)
}

// GoalSink receives the goals a live tick extracted.
type GoalSink interface {
	PublishGoals(ctx context.Context, id GameID, goals []Goal) error
}

// Recorder receives tick and transition observations.
type Recorder interface {
	RecordWatchTick(table string, duration time.Duration, err error)
	RecordTransition(from, to string)
}

// Config wires a Tracker.
type Config struct {
	Client    StatsClient
	Scheduler Scheduler
	Sink      GoalSink
	Logger    *slog.Logger
	Metrics   Recorder
	Cadences  Cadences
	Location  *time.Location
	Now       func() time.Time
}

// entry is a game's registration in one table. A move replaces the entry, so
// a tick holding a stale pointer can tell it has been superseded.
type entry struct {
	table     Table
	task      Task
	watermark string
}

// Tracker owns the watch tables and moves games between them as their
// tasks fire. A game is a key in at most one table at a time.
type Tracker struct {
	client    StatsClient
	scheduler Scheduler
	sink      GoalSink
	logger    *slog.Logger
	metrics   Recorder
	cadences  Cadences
	loc       *time.Location
	now       func() time.Time

	mu     sync.Mutex
	tables map[Table]map[GameID]*entry
}

// NewTracker constructs a Tracker with empty tables.
func NewTracker(cfg Config) *Tracker {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	t := &Tracker{
		client:    cfg.Client,
		scheduler: cfg.Scheduler,
		sink:      cfg.Sink,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		cadences:  cfg.Cadences.withDefaults(),
		loc:       loc,
		now:       now,
		tables:    make(map[Table]map[GameID]*entry, len(Tables)),
	}
	for _, table := range Tables {
		t.tables[table] = make(map[GameID]*entry)
	}
	return t
}

// Rebuild discards every tracked game, fetches today's schedule and starts
// watching each game filter accepts. Games the schedule already reports as
// pre-game or live get an immediate check so they land in the right table
// without waiting a full pre-game cadence.
func (t *Tracker) Rebuild(ctx context.Context, filter Filter) error {
	if filter == nil {
		filter = AllGames
	}
	taskCtx := context.WithoutCancel(ctx)

	t.mu.Lock()
	cleared := t.clearLocked()
	t.mu.Unlock()

	date := timeutil.Today(t.now(), t.loc)
	sched, err := t.client.Schedule(ctx, statsapi.ScheduleQuery{Date: date})
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", date, err)
	}

	type pending struct {
		id GameID
		e  *entry
	}
	var underway []pending
	accepted := 0

	t.mu.Lock()
	for _, game := range sched.Games() {
		if !filter(game) {
			continue
		}
		id := GameID(game.GamePk)
		if _, tracked := t.lookupLocked(id); tracked {
			continue
		}
		e, err := t.registerLocked(taskCtx, id, Scheduled, "")
		if err != nil {
			logging.Error(t.logger, "watch register failed", err, logging.FieldGameID, int(id))
			continue
		}
		accepted++
		if Next(Scheduled, game.Status.CodedGameState).Kind != Stay {
			underway = append(underway, pending{id: id, e: e})
		}
	}
	t.mu.Unlock()

	logging.Info(t.logger, "watch tables rebuilt",
		logging.FieldDate, date,
		logging.FieldCount, accepted,
		"cleared", cleared,
	)

	for _, p := range underway {
		t.tick(taskCtx, p.id, p.e)
	}
	return nil
}

// Watch starts tracking one game and checks it immediately.
func (t *Tracker) Watch(ctx context.Context, id GameID) error {
	taskCtx := context.WithoutCancel(ctx)

	t.mu.Lock()
	if _, tracked := t.lookupLocked(id); tracked {
		t.mu.Unlock()
		return ErrAlreadyWatched
	}
	e, err := t.registerLocked(taskCtx, id, Scheduled, "")
	t.mu.Unlock()
	if err != nil {
		return err
	}

	logging.Info(t.logger, "watching game", logging.FieldGameID, int(id))
	t.tick(taskCtx, id, e)
	return nil
}

// Unwatch cancels and forgets a game. It reports whether the game was tracked.
func (t *Tracker) Unwatch(id GameID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lookupLocked(id)
	if !ok {
		return false
	}
	t.dropLocked(id, e)
	return true
}

// State reports which table holds the game.
func (t *Tracker) State(id GameID) (Table, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lookupLocked(id)
	if !ok {
		return 0, false
	}
	return e.table, true
}

// Snapshot is a point-in-time copy of the watch tables.
type Snapshot struct {
	Scheduled  []GameID          `json:"scheduled"`
	Pregame    []GameID          `json:"pregame"`
	InProgress []GameID          `json:"in_progress"`
	Watermarks map[GameID]string `json:"watermarks,omitempty"`
}

// Len is the number of tracked games.
func (s Snapshot) Len() int {
	return len(s.Scheduled) + len(s.Pregame) + len(s.InProgress)
}

// Snapshot copies the tables, ids sorted ascending.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		Scheduled:  sortedIDs(t.tables[Scheduled]),
		Pregame:    sortedIDs(t.tables[Pregame]),
		InProgress: sortedIDs(t.tables[InProgress]),
	}
	for id, e := range t.tables[InProgress] {
		if e.watermark == "" {
			continue
		}
		if snap.Watermarks == nil {
			snap.Watermarks = make(map[GameID]string)
		}
		snap.Watermarks[id] = e.watermark
	}
	return snap
}

// Stop cancels every task and empties the tables.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := t.clearLocked(); n > 0 {
		logging.Info(t.logger, "watch stopped", logging.FieldCount, n)
	}
}

// tick is one firing of a game's task.
func (t *Tracker) tick(ctx context.Context, id GameID, e *entry) {
	start := t.now()
	err := t.check(ctx, id, e)
	if t.metrics != nil {
		t.metrics.RecordWatchTick(e.table.String(), t.now().Sub(start), err)
	}
	if err != nil {
		logging.Warn(t.logger, "watch check failed",
			logging.FieldGameID, int(id),
			logging.FieldTable, e.table.String(),
			logging.FieldError, err,
		)
	}
}

func (t *Tracker) check(ctx context.Context, id GameID, e *entry) error {
	if !t.isCurrent(id, e) {
		return nil
	}

	feed, err := t.client.GameFeed(ctx, int(id))
	if err != nil {
		return err
	}
	state := feed.CodedState()
	step := Next(e.table, state)

	logging.Debug(t.logger, "watch check",
		logging.FieldGameID, int(id),
		logging.FieldTable, e.table.String(),
		logging.FieldState, state.String(),
		"step", step.Kind.String(),
	)

	switch step.Kind {
	case Move:
		return t.move(ctx, id, e, step.To, feed.Watermark())
	case Remove:
		t.remove(id, e, state)
	case Diff:
		return t.diff(ctx, id, e, feed.Watermark())
	}
	return nil
}

func (t *Tracker) move(ctx context.Context, id GameID, e *entry, to Table, watermark string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isCurrentLocked(id, e) {
		return nil
	}
	t.dropLocked(id, e)
	if to != InProgress {
		watermark = ""
	}
	if _, err := t.registerLocked(ctx, id, to, watermark); err != nil {
		if _, restoreErr := t.registerLocked(ctx, id, e.table, e.watermark); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
		return fmt.Errorf("move %s to %s: %w", e.table, to, err)
	}

	if t.metrics != nil {
		t.metrics.RecordTransition(e.table.String(), to.String())
	}
	logging.Info(t.logger, "game moved",
		logging.FieldGameID, int(id),
		logging.FieldFrom, e.table.String(),
		logging.FieldTo, to.String(),
		logging.FieldWatermark, watermark,
	)
	return nil
}

func (t *Tracker) remove(id GameID, e *entry, state statsapi.CodedState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isCurrentLocked(id, e) {
		return
	}
	t.dropLocked(id, e)

	if t.metrics != nil {
		t.metrics.RecordTransition(e.table.String(), "")
	}
	logging.Info(t.logger, "game finished, watch removed",
		logging.FieldGameID, int(id),
		logging.FieldState, state.String(),
	)
}

// diff publishes the goals added since the entry's watermark. The feed is
// read before the diff, so the diff payload's own timestamp wins over the
// feed's when it is newer; otherwise a goal recorded between the two reads
// would be fetched again next tick.
func (t *Tracker) diff(ctx context.Context, id GameID, e *entry, next string) error {
	t.mu.Lock()
	since := e.watermark
	t.mu.Unlock()

	containers, err := t.client.GameDiff(ctx, int(id), since)
	if err != nil {
		return err
	}
	if w := DiffWatermark(containers); w > next {
		next = w
	}
	goals := ExtractGoals(containers)
	if len(goals) > 0 {
		logging.Info(t.logger, "goals scored",
			logging.FieldGameID, int(id),
			logging.FieldCount, len(goals),
			logging.FieldWatermark, since,
		)
		if t.sink != nil {
			if err := t.sink.PublishGoals(ctx, id, goals); err != nil {
				logging.Warn(t.logger, "goal publish failed", logging.FieldGameID, int(id), logging.FieldError, err)
			}
		}
	}

	t.mu.Lock()
	if t.isCurrentLocked(id, e) && next != "" {
		e.watermark = next
	}
	t.mu.Unlock()
	return nil
}

// registerLocked schedules a task for id and inserts it into table.
// Callers must have removed id from every table first.
func (t *Tracker) registerLocked(ctx context.Context, id GameID, table Table, watermark string) (*entry, error) {
	e := &entry{table: table, watermark: watermark}
	task, err := t.scheduler.Every(t.cadences.For(table), func() {
		t.tick(ctx, id, e)
	})
	if err != nil {
		return nil, err
	}
	e.task = task
	t.tables[table][id] = e
	return e, nil
}

// dropLocked cancels the entry's task before deleting it from its table.
func (t *Tracker) dropLocked(id GameID, e *entry) {
	if e.task != nil {
		e.task.Cancel()
	}
	delete(t.tables[e.table], id)
}

func (t *Tracker) clearLocked() int {
	n := 0
	for _, table := range Tables {
		for id, e := range t.tables[table] {
			t.dropLocked(id, e)
			n++
		}
	}
	return n
}

func (t *Tracker) lookupLocked(id GameID) (*entry, bool) {
	for _, table := range Tables {
		if e, ok := t.tables[table][id]; ok {
			return e, true
		}
	}
	return nil, false
}

func (t *Tracker) isCurrent(id GameID, e *entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isCurrentLocked(id, e)
}

func (t *Tracker) isCurrentLocked(id GameID, e *entry) bool {
	return t.tables[e.table][id] == e
}

func sortedIDs(m map[GameID]*entry) []GameID {
	ids := make([]GameID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
