package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nhl-discord-bot/internal/metrics"
	"github.com/preston-bernstein/nhl-discord-bot/internal/notify"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/testutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

type captureSink struct {
	calls int
	goals []watch.Goal
	err   error
}

func (c *captureSink) PublishGoals(_ context.Context, _ watch.GameID, goals []watch.Goal) error {
	c.calls++
	c.goals = append(c.goals, goals...)
	return c.err
}

func sampleGoals(t *testing.T, descriptions ...string) []watch.Goal {
	t.Helper()
	goals := watch.ExtractGoals([]statsapi.DiffContainer{testutil.GoalDiff(descriptions...)})
	require.Len(t, goals, len(descriptions))
	return goals
}

func TestMultiDeliversToEverySinkAndJoinsErrors(t *testing.T) {
	ok := &captureSink{}
	failing := &captureSink{err: errors.New("boom")}
	after := &captureSink{}
	rec := metrics.NewRecorder()
	m := notify.NewMulti(nil, rec,
		notify.Named{Name: "ok", Sink: ok},
		notify.Named{Name: "failing", Sink: failing},
		notify.Named{Name: "skipped", Sink: nil},
		notify.Named{Name: "after", Sink: after},
	)
	assert.Equal(t, []string{"ok", "failing", "after"}, m.Names())

	err := m.PublishGoals(context.Background(), 1, sampleGoals(t, "a", "b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing: boom")
	assert.Len(t, ok.goals, 2)
	assert.Len(t, after.goals, 2)
	assert.Equal(t, 4, rec.WatchSnapshot().Goals)
}

func TestMultiSkipsEmptyBatches(t *testing.T) {
	sink := &captureSink{}
	m := notify.NewMulti(nil, nil, notify.Named{Name: "s", Sink: sink})

	require.NoError(t, m.PublishGoals(context.Background(), 1, []watch.Goal{}))
	assert.Zero(t, sink.calls)
}

func TestLogSinkWritesOneLinePerGoal(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	sink := notify.NewLogSink(logger)

	require.NoError(t, sink.PublishGoals(context.Background(), 2023020001, sampleGoals(t, "first", "second")))
	out := buf.String()
	assert.Contains(t, out, "game_id=2023020001")
	assert.Contains(t, out, "description=first")
	assert.Contains(t, out, "description=second")
	assert.Contains(t, out, `team="Washington Capitals"`)
}
