package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// StreamAdder is satisfied by *redis.Client.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamSink appends each goal to a Redis stream.
type RedisStreamSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisStreamSink writes to stream, trimming it to roughly maxLen entries
// when maxLen is positive.
func NewRedisStreamSink(client StreamAdder, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisStreamSink) PublishGoals(ctx context.Context, id watch.GameID, goals []watch.Goal) error {
	for _, g := range goals {
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("marshaling goal: %w", err)
		}
		values := map[string]interface{}{
			"data":    string(data),
			"game_id": int(id),
			"path":    g.Path,
		}
		if scorer, ok := g.Play.Scorer(); ok {
			values["scorer"] = scorer.Name
		}
		args := &redis.XAddArgs{Stream: s.stream, Values: values}
		if s.maxLen > 0 {
			args.MaxLen = s.maxLen
			args.Approx = true
		}
		if err := s.client.XAdd(ctx, args).Err(); err != nil {
			return fmt.Errorf("xadd %s: %w", s.stream, err)
		}
	}
	return nil
}
