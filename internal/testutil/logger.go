package testutil

import (
	"bufio"
	"bytes"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
)

// NewBufferLogger returns a debug-level text logger writing into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// NewJSONBufferLogger is NewBufferLogger with one JSON record per line, for
// tests that assert on individual attributes via LogRecords.
func NewJSONBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// LogRecords decodes every JSON line in buf; undecodable lines are skipped.
func LogRecords(buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var rec map[string]any
		if err := jsoniter.Unmarshal(scanner.Bytes(), &rec); err == nil {
			out = append(out, rec)
		}
	}
	return out
}

// FindLog returns the first record whose msg equals msg.
func FindLog(buf *bytes.Buffer, msg string) (map[string]any, bool) {
	for _, rec := range LogRecords(buf) {
		if rec["msg"] == msg {
			return rec, true
		}
	}
	return nil, false
}
