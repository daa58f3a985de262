package logging

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronLogger adapts a slog.Logger to cron.Logger. Cron's chatty info lines
// (schedule, wake, run) are demoted to debug.
func CronLogger(logger *slog.Logger) cron.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return cronLogger{logger: logger.With(slog.String("component", "cron"))}
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, FieldError, err)...)
}
