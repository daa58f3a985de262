// Package notify delivers goals found by the game watcher to their audiences.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Sink receives the goals of one game tick.
type Sink interface {
	PublishGoals(ctx context.Context, id watch.GameID, goals []watch.Goal) error
}

// Recorder counts goals each sink delivered.
type Recorder interface {
	RecordGoalsPublished(sink string, count int)
}

// Named labels a sink for logs and metrics.
type Named struct {
	Name string
	Sink Sink
}

// Multi fans goals out to every sink. One failing sink does not stop the rest.
type Multi struct {
	sinks   []Named
	logger  *slog.Logger
	metrics Recorder
}

// NewMulti builds a fan-out over sinks; nil sinks are skipped.
func NewMulti(logger *slog.Logger, metrics Recorder, sinks ...Named) *Multi {
	m := &Multi{logger: logger, metrics: metrics}
	for _, s := range sinks {
		if s.Sink != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Names lists the configured sinks in delivery order.
func (m *Multi) Names() []string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name
	}
	return names
}

func (m *Multi) PublishGoals(ctx context.Context, id watch.GameID, goals []watch.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Sink.PublishGoals(ctx, id, goals); err != nil {
			logging.Warn(m.logger, "goal sink failed",
				logging.FieldSink, s.Name,
				logging.FieldGameID, int(id),
				logging.FieldError, err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		if m.metrics != nil {
			m.metrics.RecordGoalsPublished(s.Name, len(goals))
		}
	}
	return errors.Join(errs...)
}

// LogSink writes each goal to the log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) PublishGoals(_ context.Context, id watch.GameID, goals []watch.Goal) error {
	for _, g := range goals {
		args := []any{
			logging.FieldGameID, int(id),
			"period", g.Play.About.Period,
			"period_time", g.Play.About.PeriodTime,
			"description", g.Play.Result.Description,
		}
		if team, ok := g.Play.Team.Get(); ok {
			args = append(args, "team", team.Name)
		}
		logging.Info(s.logger, "goal", args...)
	}
	return nil
}
