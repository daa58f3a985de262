package testutil

import (
	"strconv"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/optional"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// SampleGame returns a schedule entry for id between two teams in the given state.
func SampleGame(id, homeID, awayID int, state statsapi.CodedState) statsapi.ScheduleGame {
	return statsapi.ScheduleGame{
		GamePk:   id,
		GameDate: time.Date(2023, 10, 10, 23, 0, 0, 0, time.UTC),
		Status:   statsapi.GameStatus{CodedGameState: state, DetailedState: state.String()},
		Teams: statsapi.ScheduleTeams{
			Home: statsapi.ScheduleTeam{Team: statsapi.Ref{ID: homeID, Name: "Home " + strconv.Itoa(homeID)}},
			Away: statsapi.ScheduleTeam{Team: statsapi.Ref{ID: awayID, Name: "Away " + strconv.Itoa(awayID)}},
		},
	}
}

// SampleSchedule wraps games in a single-date schedule.
func SampleSchedule(date string, games ...statsapi.ScheduleGame) statsapi.Schedule {
	return statsapi.Schedule{
		TotalGames: len(games),
		Dates:      []statsapi.ScheduleDate{{Date: date, Games: games}},
	}
}

// SampleFeed returns a live feed for id in the given state at watermark.
func SampleFeed(id int, state statsapi.CodedState, watermark string) statsapi.GameFeed {
	return statsapi.GameFeed{
		GamePk:   id,
		MetaData: statsapi.FeedMetaData{TimeStamp: watermark},
		GameData: statsapi.GameData{
			Status: statsapi.GameStatus{CodedGameState: state, DetailedState: state.String()},
			Teams: statsapi.FeedTeams{
				Away: statsapi.Team{ID: 15, Name: "Washington Capitals", Abbreviation: "WSH"},
				Home: statsapi.Team{ID: 6, Name: "Boston Bruins", Abbreviation: "BOS"},
			},
		},
		LiveData: statsapi.LiveData{
			Linescore: optional.Some(statsapi.Linescore{
				CurrentPeriod:              2,
				CurrentPeriodOrdinal:       optional.Some("2nd"),
				CurrentPeriodTimeRemaining: optional.Some("10:00"),
				Teams: statsapi.LinescoreTeams{
					Away: statsapi.LinescoreTeam{Team: statsapi.Ref{ID: 15}, Goals: 1, ShotsOnGoal: 12},
					Home: statsapi.LinescoreTeam{Team: statsapi.Ref{ID: 6}, Goals: 2, ShotsOnGoal: 15},
				},
			}),
		},
	}
}

// GoalDiff returns a diff container adding one goal play per description.
func GoalDiff(descriptions ...string) statsapi.DiffContainer {
	c := statsapi.DiffContainer{}
	for i, d := range descriptions {
		c.Diff = append(c.Diff, statsapi.DiffEntry{
			Op:    "add",
			Path:  "/liveData/plays/allPlays/" + strconv.Itoa(i),
			Value: []byte(`{"result":{"eventTypeId":"GOAL","description":"` + d + `"},"about":{"period":1,"periodTime":"05:00"},"team":{"id":15,"name":"Washington Capitals"}}`),
		})
	}
	return c
}

// TimestampDiff returns a diff container replacing the feed timestamp.
func TimestampDiff(ts string) statsapi.DiffContainer {
	return statsapi.DiffContainer{Diff: []statsapi.DiffEntry{{
		Op:    "replace",
		Path:  "/metaData/timeStamp",
		Value: []byte(strconv.Quote(ts)),
	}}}
}

// SampleTeams returns a small league listing.
func SampleTeams() []statsapi.Team {
	return []statsapi.Team{
		{ID: 6, Name: "Boston Bruins", Abbreviation: "BOS", TeamName: "Bruins", LocationName: "Boston", Active: true},
		{ID: 15, Name: "Washington Capitals", Abbreviation: "WSH", TeamName: "Capitals", LocationName: "Washington", Active: true},
		{ID: 10, Name: "Toronto Maple Leafs", Abbreviation: "TOR", TeamName: "Maple Leafs", LocationName: "Toronto", Active: true},
	}
}

// SampleRoster returns a roster used by player lookups.
func SampleRoster() []statsapi.RosterEntry {
	return []statsapi.RosterEntry{
		{Person: statsapi.Ref{ID: 8471214, Name: "Alex Ovechkin"}, JerseyNumber: optional.Some("8"), Position: statsapi.Position{Abbreviation: "LW"}},
		{Person: statsapi.Ref{ID: 8474590, Name: "John Carlson"}, JerseyNumber: optional.Some("74"), Position: statsapi.Position{Abbreviation: "D"}},
		{Person: statsapi.Ref{ID: 8480000, Name: "Nameless"}, Position: statsapi.Position{Abbreviation: "C"}},
	}
}
