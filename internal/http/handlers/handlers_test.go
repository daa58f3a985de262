package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/poller"
	"github.com/preston-bernstein/nhl-discord-bot/internal/testutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

type stubReader struct {
	snap watch.Snapshot
}

func (s stubReader) Snapshot() watch.Snapshot { return s.snap }

func TestRootServesStaticBody(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Root), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != RootBody {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Error != "shutting down" || resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestReadyWithoutStatusFn(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyReflectsRebuildStatus(t *testing.T) {
	status := poller.Status{}
	h := NewHandler(nil, nil, func() poller.Status { return status })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	status = poller.Status{LastSuccess: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	status.ConsecutiveFailures = 3
	status.LastError = "schedule down"
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Error != "schedule down" {
		t.Fatalf("expected last error surfaced, got %q", resp.Error)
	}
}

func TestWatchingReturnsSnapshot(t *testing.T) {
	reader := stubReader{snap: watch.Snapshot{
		Scheduled:  []watch.GameID{1},
		Pregame:    []watch.GameID{},
		InProgress: []watch.GameID{2},
		Watermarks: map[watch.GameID]string{2: "20231010_230000"},
	}}
	h := NewHandler(reader, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Watching), http.MethodGet, "/watch", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp watch.Snapshot
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Scheduled) != 1 || resp.Scheduled[0] != 1 {
		t.Fatalf("unexpected scheduled %v", resp.Scheduled)
	}
	if resp.Watermarks[2] != "20231010_230000" {
		t.Fatalf("unexpected watermarks %v", resp.Watermarks)
	}
}

func TestWatchingWithoutWatcher(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Watching), http.MethodGet, "/watch", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodPut, "/health", nil), http.StatusMethodNotAllowed)
}
