package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-discord-bot/internal/config"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/notify"
)

type goalSinks struct {
	multi   *notify.Multi
	closers []namedCloser
}

// buildSinks fans goals out to the log and websocket clients always, and to a
// Discord channel and a redis stream when those are configured.
func buildSinks(cfg config.Config, logger *slog.Logger, recorder notify.Recorder, sender notify.EmbedSender, hub *notify.Hub) goalSinks {
	sinks := []notify.Named{{Name: "log", Sink: notify.NewLogSink(logger)}}
	var closers []namedCloser

	if cfg.Notify.GoalChannelID != "" && sender != nil {
		sinks = append(sinks, notify.Named{Name: "discord", Sink: notify.NewDiscordSink(sender, cfg.Notify.GoalChannelID)})
	}

	if cfg.Notify.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Notify.RedisURL)
		if err != nil {
			logging.Warn(logger, "invalid redis url, goal stream disabled", logging.FieldError, err)
		} else {
			client := redis.NewClient(opts)
			sinks = append(sinks, notify.Named{
				Name: "redis",
				Sink: notify.NewRedisStreamSink(client, cfg.Notify.RedisGoalStream, int64(cfg.Notify.RedisStreamMaxLen)),
			})
			closers = append(closers, namedCloser{name: "redis", close: client.Close})
		}
	}

	if hub != nil {
		sinks = append(sinks, notify.Named{Name: "websocket", Sink: hub})
	}

	return goalSinks{multi: notify.NewMulti(logger, recorder, sinks...), closers: closers}
}

// originChecker accepts websocket upgrades from the configured origins. No
// configured origins, or a "*" entry, accepts any origin.
func originChecker(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
		return ok
	}
}
