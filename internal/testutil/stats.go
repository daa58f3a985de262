package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// StubStats is an in-memory stand-in for the stats API client.
type StubStats struct {
	mu sync.Mutex

	ScheduleResp statsapi.Schedule
	ScheduleErr  error
	Feeds        map[int]statsapi.GameFeed
	FeedErr      error
	Diffs        map[int][]statsapi.DiffContainer
	// DiffFunc, when set, answers GameDiff in place of Diffs.
	DiffFunc        func(id int, watermark string) []statsapi.DiffContainer
	DiffErr         error
	TeamList        []statsapi.Team
	TeamsByID       map[int]statsapi.Team
	TeamStatsByID   map[int][]statsapi.StatGroup
	People          map[int]statsapi.Person
	PlayerStatsByID map[int][]statsapi.StatGroup
	StandingsResp   statsapi.Standings
	CustomResp      map[statsapi.StandingsType]statsapi.Standings
	// Err forces every call to fail.
	Err error

	calls           map[string]int
	scheduleQueries []statsapi.ScheduleQuery
	diffWatermarks  []string
}

// SetFeed replaces the live feed served for a game.
func (s *StubStats) SetFeed(feed statsapi.GameFeed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Feeds == nil {
		s.Feeds = make(map[int]statsapi.GameFeed)
	}
	s.Feeds[feed.GamePk] = feed
}

// SetDiff replaces the diff served for a game.
func (s *StubStats) SetDiff(id int, containers ...statsapi.DiffContainer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Diffs == nil {
		s.Diffs = make(map[int][]statsapi.DiffContainer)
	}
	s.Diffs[id] = containers
}

// Calls returns how many times an endpoint was hit.
func (s *StubStats) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// ScheduleQueries returns the schedule queries received.
func (s *StubStats) ScheduleQueries() []statsapi.ScheduleQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]statsapi.ScheduleQuery(nil), s.scheduleQueries...)
}

// DiffWatermarks returns the watermarks GameDiff was called with.
func (s *StubStats) DiffWatermarks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.diffWatermarks...)
}

func (s *StubStats) hit(endpoint string) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[endpoint]++
}

func (s *StubStats) Schedule(_ context.Context, q statsapi.ScheduleQuery) (statsapi.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointSchedule)
	s.scheduleQueries = append(s.scheduleQueries, q)
	if err := firstErr(s.Err, s.ScheduleErr); err != nil {
		return statsapi.Schedule{}, err
	}
	if q.TeamID == 0 {
		return s.ScheduleResp, nil
	}
	out := statsapi.Schedule{}
	for _, d := range s.ScheduleResp.Dates {
		day := statsapi.ScheduleDate{Date: d.Date}
		for _, g := range d.Games {
			if g.Involves(q.TeamID) {
				day.Games = append(day.Games, g)
			}
		}
		if len(day.Games) > 0 {
			out.Dates = append(out.Dates, day)
			out.TotalGames += len(day.Games)
		}
	}
	return out, nil
}

func (s *StubStats) Teams(context.Context) ([]statsapi.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointTeams)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.TeamList, nil
}

func (s *StubStats) Team(_ context.Context, id int, _ bool) (statsapi.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointTeam)
	if s.Err != nil {
		return statsapi.Team{}, s.Err
	}
	team, ok := s.TeamsByID[id]
	if !ok {
		return statsapi.Team{}, statsapi.ErrNotFound
	}
	return team, nil
}

func (s *StubStats) TeamStats(_ context.Context, id int) ([]statsapi.StatGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointTeamStats)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.TeamStatsByID[id], nil
}

func (s *StubStats) Person(_ context.Context, id int) (statsapi.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointPerson)
	if s.Err != nil {
		return statsapi.Person{}, s.Err
	}
	p, ok := s.People[id]
	if !ok {
		return statsapi.Person{}, statsapi.ErrNotFound
	}
	return p, nil
}

func (s *StubStats) PlayerStats(_ context.Context, id int, _ string) ([]statsapi.StatGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointPlayerStats)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.PlayerStatsByID[id], nil
}

func (s *StubStats) Standings(context.Context) (statsapi.Standings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointStandings)
	if s.Err != nil {
		return statsapi.Standings{}, s.Err
	}
	return s.StandingsResp, nil
}

func (s *StubStats) CustomStandings(_ context.Context, kind statsapi.StandingsType) (statsapi.Standings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointCustomStandings)
	if s.Err != nil {
		return statsapi.Standings{}, s.Err
	}
	if st, ok := s.CustomResp[kind]; ok {
		return st, nil
	}
	return s.StandingsResp, nil
}

func (s *StubStats) GameFeed(_ context.Context, id int) (statsapi.GameFeed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointGameFeed)
	if err := firstErr(s.Err, s.FeedErr); err != nil {
		return statsapi.GameFeed{}, err
	}
	feed, ok := s.Feeds[id]
	if !ok {
		return statsapi.GameFeed{}, &statsapi.StatusError{Endpoint: statsapi.EndpointGameFeed, StatusCode: 404}
	}
	return feed, nil
}

func (s *StubStats) GameDiff(_ context.Context, id int, watermark string) ([]statsapi.DiffContainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit(statsapi.EndpointGameDiff)
	s.diffWatermarks = append(s.diffWatermarks, watermark)
	if err := firstErr(s.Err, s.DiffErr); err != nil {
		return nil, err
	}
	if s.DiffFunc != nil {
		return s.DiffFunc(id, watermark), nil
	}
	return s.Diffs[id], nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
