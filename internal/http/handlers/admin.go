package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nhl-discord-bot/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// GameIDParam is the route parameter holding the game id.
const GameIDParam = "gameID"

// WatchController starts and stops watching individual games.
type WatchController interface {
	Watch(ctx context.Context, id watch.GameID) error
	Unwatch(id watch.GameID) bool
	State(id watch.GameID) (watch.Table, bool)
}

// Rebuilder triggers an out-of-schedule daily rebuild.
type Rebuilder interface {
	RebuildNow(ctx context.Context) error
}

// AdminHandler exposes the watch control endpoints.
// Guarded by ADMIN_TOKEN; every request is 401 when the token is unset.
type AdminHandler struct {
	watcher   WatchController
	rebuilder Rebuilder
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(watcher WatchController, rebuilder Rebuilder, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		watcher:   watcher,
		rebuilder: rebuilder,
		token:     token,
		logger:    logger,
	}
}

type watchResponse struct {
	GameID watch.GameID `json:"game_id"`
	State  watch.Table  `json:"state,omitempty"`
	Status string       `json:"status"`
}

// Watch starts tracking the game named in the path.
func (h *AdminHandler) Watch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guard(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	err := h.watcher.Watch(r.Context(), id)
	switch {
	case errors.Is(err, watch.ErrAlreadyWatched):
		writeError(w, r, http.StatusConflict, "game already watched", logger)
		return
	case err != nil:
		logging.Warn(logger, "admin watch failed", logging.FieldGameID, int(id), logging.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "failed to watch game", logger)
		return
	}

	resp := watchResponse{GameID: id, Status: "watching"}
	if table, ok := h.watcher.State(id); ok {
		resp.State = table
	} else {
		// The immediate check already found the game finished.
		resp.Status = "finished"
	}
	logging.Info(logger, "admin watch", logging.FieldGameID, int(id), logging.FieldState, resp.Status)
	writeJSON(w, http.StatusAccepted, resp, logger)
}

// Unwatch stops tracking the game named in the path.
func (h *AdminHandler) Unwatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.guard(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.watcher.Unwatch(id) {
		writeError(w, r, http.StatusNotFound, "game not watched", logger)
		return
	}
	logging.Info(logger, "admin unwatch", logging.FieldGameID, int(id))
	writeJSON(w, http.StatusOK, watchResponse{GameID: id, Status: "removed"}, logger)
}

// Rebuild reruns the daily rebuild now.
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.rebuilder == nil {
		writeError(w, r, http.StatusServiceUnavailable, "rebuild not configured", logger)
		return
	}
	if err := h.rebuilder.RebuildNow(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, "rebuild failed", logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

// guard authorizes the request and parses the game id.
func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) (watch.GameID, bool) {
	if !h.authorized(w, r) {
		return 0, false
	}
	if h.watcher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "watcher not configured", h.logger)
		return 0, false
	}
	id, err := strconv.Atoi(chi.URLParam(r, GameIDParam))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return 0, false
	}
	return watch.GameID(id), true
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	got := []byte(r.Header.Get("Authorization"))
	want := []byte("Bearer " + h.token)
	if h.token != "" && subtle.ConstantTimeCompare(got, want) == 1 {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		logging.FieldPath, r.URL.Path,
		"client_ip", requestutil.ClientIP(r),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}
