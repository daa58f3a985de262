package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nhl-discord-bot/internal/notify"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisStreamSinkAddsEntryPerGoal(t *testing.T) {
	stream := &fakeStream{}
	sink := notify.NewRedisStreamSink(stream, "nhl.goals", 1000)

	require.NoError(t, sink.PublishGoals(context.Background(), 77, sampleGoals(t, "one", "two")))
	require.Len(t, stream.args, 2)

	first := stream.args[0]
	assert.Equal(t, "nhl.goals", first.Stream)
	assert.Equal(t, int64(1000), first.MaxLen)
	assert.True(t, first.Approx)

	values, ok := first.Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 77, values["game_id"])
	assert.Equal(t, "/liveData/plays/allPlays/0", values["path"])
	assert.Contains(t, values["data"], `"description":"one"`)
}

func TestRedisStreamSinkWithoutTrim(t *testing.T) {
	stream := &fakeStream{}
	sink := notify.NewRedisStreamSink(stream, "s", 0)

	require.NoError(t, sink.PublishGoals(context.Background(), 1, sampleGoals(t, "one")))
	assert.Zero(t, stream.args[0].MaxLen)
	assert.False(t, stream.args[0].Approx)
}

func TestRedisStreamSinkWrapsError(t *testing.T) {
	stream := &fakeStream{err: errors.New("connection refused")}
	sink := notify.NewRedisStreamSink(stream, "nhl.goals", 0)

	err := sink.PublishGoals(context.Background(), 1, sampleGoals(t, "one", "two"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xadd nhl.goals")
	assert.Len(t, stream.args, 1)
}
