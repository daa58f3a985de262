package watch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nhl-discord-bot/internal/metrics"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/testutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

var fixedNow = time.Date(2023, 10, 10, 16, 0, 0, 0, time.UTC)

type published struct {
	id    watch.GameID
	goals []watch.Goal
}

type recordingSink struct {
	mu    sync.Mutex
	calls []published
	err   error
}

func (s *recordingSink) PublishGoals(_ context.Context, id watch.GameID, goals []watch.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, published{id: id, goals: goals})
	return s.err
}

type harness struct {
	tracker *watch.Tracker
	sched   *testutil.ManualScheduler
	stats   *testutil.StubStats
	sink    *recordingSink
	rec     *metrics.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched: &testutil.ManualScheduler{},
		stats: &testutil.StubStats{},
		sink:  &recordingSink{},
		rec:   metrics.NewRecorder(),
	}
	logger, _ := testutil.NewBufferLogger()
	h.tracker = watch.NewTracker(watch.Config{
		Client:    h.stats,
		Scheduler: h.sched,
		Sink:      h.sink,
		Logger:    logger,
		Metrics:   h.rec,
		Location:  time.UTC,
		Now:       testutil.NowAt(fixedNow),
	})
	return h
}

// assertExclusive checks every tracked id sits in exactly one table and owns
// exactly one live task.
func assertExclusive(t *testing.T, h *harness) {
	t.Helper()
	snap := h.tracker.Snapshot()
	seen := map[watch.GameID]int{}
	for _, ids := range [][]watch.GameID{snap.Scheduled, snap.Pregame, snap.InProgress} {
		for _, id := range ids {
			seen[id]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "game %d appears in %d tables", id, n)
	}
	assert.Len(t, h.sched.Active(), snap.Len(), "one active task per tracked game")
}

func TestRebuildSeedsUnderwayGamesStraightToInProgress(t *testing.T) {
	h := newHarness(t)
	h.stats.ScheduleResp = testutil.SampleSchedule("2023-10-10",
		testutil.SampleGame(1, 6, 15, statsapi.StatePreview),
		testutil.SampleGame(2, 10, 8, statsapi.StateInProgress),
	)
	h.stats.SetFeed(testutil.SampleFeed(1, statsapi.StatePreview, "t-a"))
	h.stats.SetFeed(testutil.SampleFeed(2, statsapi.StateInProgress, "t-b"))

	require.NoError(t, h.tracker.Rebuild(context.Background(), watch.AllGames))

	snap := h.tracker.Snapshot()
	assert.Equal(t, []watch.GameID{1}, snap.Scheduled)
	assert.Empty(t, snap.Pregame)
	assert.Equal(t, []watch.GameID{2}, snap.InProgress)
	assert.Equal(t, "t-b", snap.Watermarks[2])
	assertExclusive(t, h)

	queries := h.stats.ScheduleQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, "2023-10-10", queries[0].Date)

	intervals := map[time.Duration]int{}
	for _, task := range h.sched.Active() {
		intervals[task.Interval]++
	}
	assert.Equal(t, map[time.Duration]int{
		watch.DefaultCadences.Pregame: 1,
		watch.DefaultCadences.Live:    1,
	}, intervals)
}

func TestRebuildKeepsOnlyAcceptedGamesAndClearsPrevious(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(99, statsapi.StatePreview, "t"))
	require.NoError(t, h.tracker.Watch(context.Background(), 99))
	oldTask := h.sched.Active()[0]

	h.stats.ScheduleResp = testutil.SampleSchedule("2023-10-10",
		testutil.SampleGame(1, 15, 6, statsapi.StatePreview),
		testutil.SampleGame(2, 10, 8, statsapi.StatePreview),
		testutil.SampleGame(3, 8, 15, statsapi.StatePreview),
	)

	require.NoError(t, h.tracker.Rebuild(context.Background(), watch.TeamFilter(15)))

	snap := h.tracker.Snapshot()
	assert.Equal(t, []watch.GameID{1, 3}, snap.Scheduled)
	_, tracked := h.tracker.State(99)
	assert.False(t, tracked)
	assert.True(t, oldTask.Cancelled())
	assertExclusive(t, h)
}

func TestRebuildIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.stats.ScheduleResp = testutil.SampleSchedule("2023-10-10",
		testutil.SampleGame(1, 6, 15, statsapi.StatePreview),
		testutil.SampleGame(2, 10, 8, statsapi.StatePreview),
	)

	require.NoError(t, h.tracker.Rebuild(context.Background(), watch.AllGames))
	first := h.tracker.Snapshot()
	require.NoError(t, h.tracker.Rebuild(context.Background(), watch.AllGames))
	second := h.tracker.Snapshot()

	assert.Equal(t, first, second)
	assert.Len(t, h.sched.Active(), 2)
	assert.Len(t, h.sched.All(), 4)
}

func TestRebuildScheduleErrorLeavesTablesEmpty(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(5, statsapi.StatePreview, "t"))
	require.NoError(t, h.tracker.Watch(context.Background(), 5))

	h.stats.ScheduleErr = errors.New("upstream down")
	err := h.tracker.Rebuild(context.Background(), nil)

	require.Error(t, err)
	assert.Zero(t, h.tracker.Snapshot().Len())
	assert.Empty(t, h.sched.Active())
}

func TestGameLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.stats.SetFeed(testutil.SampleFeed(7, statsapi.StatePreview, "t0"))

	require.NoError(t, h.tracker.Watch(ctx, 7))
	table, ok := h.tracker.State(7)
	require.True(t, ok)
	assert.Equal(t, watch.Scheduled, table)

	h.stats.SetFeed(testutil.SampleFeed(7, statsapi.StatePregame, "t1"))
	h.sched.FireAll()
	table, _ = h.tracker.State(7)
	assert.Equal(t, watch.Pregame, table)
	require.Len(t, h.sched.Active(), 1)
	assert.Equal(t, watch.DefaultCadences.GameStart, h.sched.Active()[0].Interval)
	assertExclusive(t, h)

	h.stats.SetFeed(testutil.SampleFeed(7, statsapi.StateInProgress, "t2"))
	h.sched.FireAll()
	table, _ = h.tracker.State(7)
	assert.Equal(t, watch.InProgress, table)
	assert.Equal(t, "t2", h.tracker.Snapshot().Watermarks[7])
	assertExclusive(t, h)

	h.stats.SetFeed(testutil.SampleFeed(7, statsapi.StateCritical, "t3"))
	h.stats.SetDiff(7, testutil.GoalDiff("Ovechkin scores"))
	h.sched.FireAll()
	assert.Equal(t, []string{"t2"}, h.stats.DiffWatermarks())
	assert.Equal(t, "t3", h.tracker.Snapshot().Watermarks[7])
	require.Len(t, h.sink.calls, 1)
	assert.Equal(t, watch.GameID(7), h.sink.calls[0].id)
	require.Len(t, h.sink.calls[0].goals, 1)
	assert.Equal(t, "Ovechkin scores", h.sink.calls[0].goals[0].Play.Result.Description)

	h.stats.SetFeed(testutil.SampleFeed(7, statsapi.StateFinal, "t4"))
	h.sched.FireAll()
	_, ok = h.tracker.State(7)
	assert.False(t, ok)
	assert.Empty(t, h.sched.Active())

	counts := h.rec.WatchSnapshot()
	assert.Equal(t, 3, counts.Transitions)
	assert.Equal(t, 5, counts.Ticks)
}

func TestFinalTickRemovesAndStaleFiringIsDropped(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(8, statsapi.StateInProgress, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 8))
	live := h.sched.Active()[0]

	h.stats.SetFeed(testutil.SampleFeed(8, statsapi.StateFinal, "t1"))
	live.Fire()

	_, ok := h.tracker.State(8)
	assert.False(t, ok)
	assert.True(t, live.Cancelled())

	feedCalls := h.stats.Calls(statsapi.EndpointGameFeed)
	live.Run()
	live.Fire()
	assert.Equal(t, feedCalls, h.stats.Calls(statsapi.EndpointGameFeed), "stale firing must not poll")
}

func TestUnknownStateIsSilentStay(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(9, statsapi.StatePostponed, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 9))
	task := h.sched.Active()[0]

	h.sched.FireAll()
	h.sched.FireAll()

	table, ok := h.tracker.State(9)
	require.True(t, ok)
	assert.Equal(t, watch.Scheduled, table)
	assert.False(t, task.Cancelled())
	assert.Len(t, h.sched.All(), 1)
}

func TestFeedErrorKeepsGameAndCountsFailure(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(4, statsapi.StatePreview, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 4))

	h.stats.FeedErr = errors.New("timeout")
	h.sched.FireAll()

	table, ok := h.tracker.State(4)
	require.True(t, ok)
	assert.Equal(t, watch.Scheduled, table)
	assert.Equal(t, 1, h.rec.WatchSnapshot().TickErrors)

	h.stats.FeedErr = nil
	h.stats.SetFeed(testutil.SampleFeed(4, statsapi.StatePregame, "t1"))
	h.sched.FireAll()
	table, _ = h.tracker.State(4)
	assert.Equal(t, watch.Pregame, table)
}

func TestDiffErrorDoesNotAdvanceWatermark(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(3, statsapi.StateInProgress, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 3))

	h.stats.SetFeed(testutil.SampleFeed(3, statsapi.StateInProgress, "t1"))
	h.stats.DiffErr = errors.New("diff broke")
	h.sched.FireAll()
	assert.Equal(t, "t0", h.tracker.Snapshot().Watermarks[3])

	h.stats.DiffErr = nil
	h.sched.FireAll()
	assert.Equal(t, "t1", h.tracker.Snapshot().Watermarks[3])
	assert.Equal(t, []string{"t0", "t0"}, h.stats.DiffWatermarks())
	assert.Empty(t, h.sink.calls, "no goals means no publish")
}

func TestSinkErrorStillAdvancesWatermark(t *testing.T) {
	h := newHarness(t)
	h.sink.err = errors.New("discord down")
	h.stats.SetFeed(testutil.SampleFeed(3, statsapi.StateInProgress, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 3))

	h.stats.SetFeed(testutil.SampleFeed(3, statsapi.StateInProgress, "t1"))
	h.stats.SetDiff(3, testutil.GoalDiff("goal"))
	h.sched.FireAll()

	assert.Equal(t, "t1", h.tracker.Snapshot().Watermarks[3])
	assert.Len(t, h.sink.calls, 1)
}

func TestGoalBetweenFeedAndDiffIsPublishedOnce(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(5, statsapi.StateInProgress, "20231010_233000"))
	require.NoError(t, h.tracker.Watch(context.Background(), 5))

	// Upstream records the goal at :15, after the feed read at :10.
	const goalAt = "20231010_233015"
	h.stats.SetFeed(testutil.SampleFeed(5, statsapi.StateInProgress, "20231010_233010"))
	h.stats.DiffFunc = func(_ int, since string) []statsapi.DiffContainer {
		if since >= goalAt {
			return nil
		}
		return []statsapi.DiffContainer{testutil.GoalDiff("late goal"), testutil.TimestampDiff(goalAt)}
	}

	h.sched.FireAll()
	h.sched.FireAll()

	require.Len(t, h.sink.calls, 1, "goal must be published once")
	assert.Equal(t, goalAt, h.tracker.Snapshot().Watermarks[5])
	assert.Equal(t, []string{"20231010_233000", goalAt}, h.stats.DiffWatermarks())
}

func TestOlderDiffTimestampKeepsFeedWatermark(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(5, statsapi.StateInProgress, "20231010_233000"))
	require.NoError(t, h.tracker.Watch(context.Background(), 5))

	h.stats.SetFeed(testutil.SampleFeed(5, statsapi.StateInProgress, "20231010_233020"))
	h.stats.SetDiff(5, testutil.TimestampDiff("20231010_233010"))
	h.sched.FireAll()

	assert.Equal(t, "20231010_233020", h.tracker.Snapshot().Watermarks[5])
}

func TestMoveRegisterErrorKeepsGameInPlace(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(11, statsapi.StatePreview, "t0"))
	require.NoError(t, h.tracker.Watch(context.Background(), 11))
	original := h.sched.Active()[0]

	h.stats.SetFeed(testutil.SampleFeed(11, statsapi.StatePregame, "t1"))
	h.sched.FailOnce = errors.New("no slots")
	h.sched.FireAll()

	table, ok := h.tracker.State(11)
	require.True(t, ok, "failed move must not drop the game")
	assert.Equal(t, watch.Scheduled, table)
	assert.True(t, original.Cancelled())
	require.Len(t, h.sched.Active(), 1)
	assert.Equal(t, watch.DefaultCadences.For(watch.Scheduled), h.sched.Active()[0].Interval)
	assert.Equal(t, 1, h.rec.WatchSnapshot().TickErrors)
	assertExclusive(t, h)

	h.sched.FireAll()
	table, _ = h.tracker.State(11)
	assert.Equal(t, watch.Pregame, table)
	assertExclusive(t, h)
}

func TestWatchUnwatchAndStop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.stats.SetFeed(testutil.SampleFeed(1, statsapi.StatePreview, "t"))
	h.stats.SetFeed(testutil.SampleFeed(2, statsapi.StatePreview, "t"))

	require.NoError(t, h.tracker.Watch(ctx, 1))
	assert.ErrorIs(t, h.tracker.Watch(ctx, 1), watch.ErrAlreadyWatched)
	require.NoError(t, h.tracker.Watch(ctx, 2))
	assertExclusive(t, h)

	assert.True(t, h.tracker.Unwatch(1))
	assert.False(t, h.tracker.Unwatch(1))
	assert.Len(t, h.sched.Active(), 1)

	h.tracker.Stop()
	assert.Zero(t, h.tracker.Snapshot().Len())
	assert.Empty(t, h.sched.Active())
}

func TestWatchSchedulerErrorIsReturned(t *testing.T) {
	h := newHarness(t)
	h.sched.Err = errors.New("no slots")

	err := h.tracker.Watch(context.Background(), 1)
	require.Error(t, err)
	_, ok := h.tracker.State(1)
	assert.False(t, ok)
}

func TestWatchOutlivesCallerContext(t *testing.T) {
	h := newHarness(t)
	h.stats.SetFeed(testutil.SampleFeed(6, statsapi.StatePreview, "t"))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.tracker.Watch(ctx, 6))
	cancel()

	h.stats.SetFeed(testutil.SampleFeed(6, statsapi.StatePregame, "t"))
	h.sched.FireAll()
	table, _ := h.tracker.State(6)
	assert.Equal(t, watch.Pregame, table)
}
