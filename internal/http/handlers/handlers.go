package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/poller"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// RootBody is the static body served at / for hosting platform probes.
const RootBody = "nhl-discord-bot is running\n"

// WatchReader exposes the watch tables read-only.
type WatchReader interface {
	Snapshot() watch.Snapshot
}

// Handler serves the probe, health and watch snapshot routes.
type Handler struct {
	watcher  WatchReader
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. A nil statusFn reports ready unconditionally.
func NewHandler(watcher WatchReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		watcher:  watcher,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Root always answers 200 with a static body.
func (h *Handler) Root(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write([]byte(RootBody)); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "root write failed", logging.FieldError, err)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the daily rebuild has succeeded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "rebuild": status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Watching returns the current watch tables.
func (h *Handler) Watching(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.watcher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "watcher not configured", h.logger)
		return
	}
	snap := h.watcher.Snapshot()
	logging.Debug(loggerFromContext(r, h.logger), "served watch snapshot", logging.FieldCount, snap.Len())
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

// NotFound answers unknown routes in the JSON error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
