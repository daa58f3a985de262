package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	clock := NewClock(now)
	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(now.Add(90 * time.Second)) {
		t.Fatalf("expected advanced time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame(7, 6, 15, statsapi.StatePreview)
	if g.GamePk != 7 || !g.Involves(6) || !g.Involves(15) {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	sched := SampleSchedule("2023-10-10", g)
	if len(sched.Games()) != 1 {
		t.Fatalf("unexpected schedule %+v", sched)
	}
	feed := SampleFeed(7, statsapi.StateFinal, "ts")
	if feed.CodedState() != statsapi.StateFinal || feed.Watermark() != "ts" {
		t.Fatalf("unexpected feed %+v", feed)
	}
	if diff := GoalDiff("a", "b"); len(diff.Diff) != 2 {
		t.Fatalf("expected two diff entries, got %d", len(diff.Diff))
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)

	echoAuth := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Authorization")))
	})
	if got := ServeAuthorized(echoAuth, http.MethodPost, "/admin", "tok").Body.String(); got != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestJSONBufferLogger(t *testing.T) {
	logger, buf := NewJSONBufferLogger()
	logger.Debug("tick", "game_id", 7)
	logger.Info("goal", "team", "BOS")
	buf.WriteString("not json\n")

	if got := len(LogRecords(buf)); got != 2 {
		t.Fatalf("expected two records, got %d", got)
	}
	rec, ok := FindLog(buf, "goal")
	if !ok || rec["team"] != "BOS" {
		t.Fatalf("expected goal record, got %v", rec)
	}
	if _, ok := FindLog(buf, "missing"); ok {
		t.Fatalf("expected no record for unknown message")
	}
}

func TestManualScheduler(t *testing.T) {
	s := &ManualScheduler{}
	fired := 0
	task, err := s.Every(time.Second, func() { fired++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.FireAll()
	if fired != 1 {
		t.Fatalf("expected one firing, got %d", fired)
	}

	task.Cancel()
	task.Cancel()
	s.FireAll()
	if fired != 1 || len(s.Active()) != 0 || len(s.All()) != 1 {
		t.Fatalf("expected cancelled task to stay quiet")
	}
	s.All()[0].Run()
	if fired != 2 {
		t.Fatalf("expected Run to bypass cancellation")
	}

	s.FailOnce = errors.New("busy")
	if _, err := s.Every(time.Second, func() {}); err == nil {
		t.Fatalf("expected one-shot error")
	}
	if _, err := s.Every(time.Second, func() {}); err != nil {
		t.Fatalf("expected one-shot error to clear, got %v", err)
	}

	s.Err = errors.New("full")
	if _, err := s.Every(time.Second, func() {}); err == nil {
		t.Fatalf("expected configured error")
	}
}

func TestStubStatsFiltersScheduleByTeam(t *testing.T) {
	stub := &StubStats{ScheduleResp: SampleSchedule("2023-10-10",
		SampleGame(1, 6, 15, statsapi.StatePreview),
		SampleGame(2, 10, 8, statsapi.StatePreview),
	)}
	sched, err := stub.Schedule(context.Background(), statsapi.ScheduleQuery{TeamID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if games := sched.Games(); len(games) != 1 || games[0].GamePk != 2 {
		t.Fatalf("expected only game 2, got %+v", games)
	}
	if stub.Calls(statsapi.EndpointSchedule) != 1 || len(stub.ScheduleQueries()) != 1 {
		t.Fatalf("expected schedule call to be recorded")
	}
	if _, err := stub.GameFeed(context.Background(), 99); err == nil {
		t.Fatalf("expected error for unknown feed")
	}
}

func TestRecordingSender(t *testing.T) {
	r := &RecordingSender{}
	if _, err := r.ChannelMessageSend("c1", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ChannelMessageSendEmbed("c1", &discordgo.MessageEmbed{Title: "t"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.MessageReactionAdd("c1", "m1", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Messages()) != 2 || r.LastEmbed().Title != "t" || len(r.Reactions()) != 1 {
		t.Fatalf("unexpected capture %+v %+v", r.Messages(), r.Reactions())
	}
}
