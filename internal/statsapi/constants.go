package statsapi

import "time"

const (
	defaultBaseURL     = "https://statsapi.web.nhl.com/api/v1"
	defaultHTTPTimeout = 10 * time.Second
	errorBodyLimit     = 512
)

// Endpoint names used for logging and metrics.
const (
	EndpointSchedule        = "schedule"
	EndpointTeams           = "teams"
	EndpointTeam            = "team"
	EndpointTeamStats       = "team_stats"
	EndpointPerson          = "person"
	EndpointPlayerStats     = "player_stats"
	EndpointStandings       = "standings"
	EndpointCustomStandings = "custom_standings"
	EndpointGameFeed        = "game_feed"
	EndpointGameDiff        = "game_diff"
)
