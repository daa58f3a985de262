package logging

import (
	"context"
	"log/slog"
)

// Debug, Info, Warn and Error tolerate a nil logger so optional wiring never
// needs a guard at the call site.

func Debug(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelDebug, msg, args)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelWarn, msg, args)
}

// Error appends err under FieldError when it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, FieldError, err)
	}
	logAt(logger, slog.LevelError, msg, args)
}

func logAt(logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}
	logger.Log(ctx, level, msg, args...)
}
