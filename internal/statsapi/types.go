package statsapi

import (
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/nhl-discord-bot/internal/optional"
)

// Ref is the {id, name} pair the API embeds for teams, people and groupings.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Schedule is the /schedule envelope.
type Schedule struct {
	TotalGames int            `json:"totalGames"`
	Dates      []ScheduleDate `json:"dates"`
}

// Games flattens every date's games in order.
func (s Schedule) Games() []ScheduleGame {
	var out []ScheduleGame
	for _, d := range s.Dates {
		out = append(out, d.Games...)
	}
	return out
}

type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

type ScheduleGame struct {
	GamePk   int                 `json:"gamePk"`
	GameType string              `json:"gameType"`
	Season   string              `json:"season"`
	GameDate time.Time           `json:"gameDate"`
	Status   GameStatus          `json:"status"`
	Teams    ScheduleTeams       `json:"teams"`
	Venue    optional.Value[Ref] `json:"venue"`
}

// Involves reports whether teamID plays in the game.
func (g ScheduleGame) Involves(teamID int) bool {
	return g.Teams.Home.Team.ID == teamID || g.Teams.Away.Team.ID == teamID
}

type GameStatus struct {
	AbstractGameState string     `json:"abstractGameState"`
	CodedGameState    CodedState `json:"codedGameState"`
	DetailedState     string     `json:"detailedState"`
}

type ScheduleTeams struct {
	Away ScheduleTeam `json:"away"`
	Home ScheduleTeam `json:"home"`
}

type ScheduleTeam struct {
	Team         Ref                          `json:"team"`
	Score        optional.Value[int]          `json:"score"`
	LeagueRecord optional.Value[LeagueRecord] `json:"leagueRecord"`
}

type LeagueRecord struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	OT     int    `json:"ot"`
	Type   string `json:"type"`
}

// String renders the record as W-L-OT.
func (r LeagueRecord) String() string {
	return strconv.Itoa(r.Wins) + "-" + strconv.Itoa(r.Losses) + "-" + strconv.Itoa(r.OT)
}

// Team is one entry of the /teams envelope.
type Team struct {
	ID              int                    `json:"id"`
	Name            string                 `json:"name"`
	Abbreviation    string                 `json:"abbreviation"`
	TeamName        string                 `json:"teamName"`
	LocationName    string                 `json:"locationName"`
	ShortName       string                 `json:"shortName"`
	FirstYearOfPlay optional.Value[string] `json:"firstYearOfPlay"`
	OfficialSiteURL optional.Value[string] `json:"officialSiteUrl"`
	Active          bool                   `json:"active"`
	Venue           optional.Value[Venue]  `json:"venue"`
	Division        optional.Value[Ref]    `json:"division"`
	Conference      optional.Value[Ref]    `json:"conference"`
	Roster          optional.Value[Roster] `json:"roster"`
}

type Venue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type Roster struct {
	Roster []RosterEntry `json:"roster"`
}

type RosterEntry struct {
	Person       Ref                    `json:"person"`
	JerseyNumber optional.Value[string] `json:"jerseyNumber"`
	Position     Position               `json:"position"`
}

type Position struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Abbreviation string `json:"abbreviation"`
}

type teamsEnvelope struct {
	Teams []Team `json:"teams"`
}

// Person is one entry of the /people envelope.
type Person struct {
	ID              int                      `json:"id"`
	FullName        string                   `json:"fullName"`
	FirstName       string                   `json:"firstName"`
	LastName        string                   `json:"lastName"`
	PrimaryNumber   optional.Value[string]   `json:"primaryNumber"`
	BirthDate       optional.Value[string]   `json:"birthDate"`
	CurrentAge      optional.Value[int]      `json:"currentAge"`
	BirthCity       optional.Value[string]   `json:"birthCity"`
	BirthCountry    optional.Value[string]   `json:"birthCountry"`
	Nationality     optional.Value[string]   `json:"nationality"`
	Height          optional.Value[string]   `json:"height"`
	Weight          optional.Value[int]      `json:"weight"`
	Active          bool                     `json:"active"`
	Rookie          bool                     `json:"rookie"`
	ShootsCatches   optional.Value[string]   `json:"shootsCatches"`
	CurrentTeam     optional.Value[Ref]      `json:"currentTeam"`
	PrimaryPosition optional.Value[Position] `json:"primaryPosition"`
}

type peopleEnvelope struct {
	People []Person `json:"people"`
}

// StatGroup is one entry of a /stats envelope (one per requested stat type).
type StatGroup struct {
	Type   StatType    `json:"type"`
	Splits []StatSplit `json:"splits"`
}

type StatType struct {
	DisplayName string `json:"displayName"`
}

type StatSplit struct {
	Season optional.Value[string] `json:"season"`
	Stat   StatLine               `json:"stat"`
}

type statsEnvelope struct {
	Stats []StatGroup `json:"stats"`
}

// StatLine is a loosely typed stat map. The API mixes numbers and strings
// for the same keys across stat types, so values are kept as decoded.
type StatLine map[string]any

// Lookup renders the value for key, reporting whether it was present.
func (s StatLine) Lookup(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// Standings is the /standings envelope.
type Standings struct {
	Records []StandingsRecord `json:"records"`
}

type StandingsRecord struct {
	StandingsType string              `json:"standingsType"`
	League        optional.Value[Ref] `json:"league"`
	Division      optional.Value[Ref] `json:"division"`
	Conference    optional.Value[Ref] `json:"conference"`
	TeamRecords   []TeamRecord        `json:"teamRecords"`
}

// Heading names the grouping a record covers, most specific first.
func (r StandingsRecord) Heading() string {
	if d, ok := r.Division.Get(); ok {
		return d.Name
	}
	if c, ok := r.Conference.Get(); ok {
		return c.Name
	}
	if l, ok := r.League.Get(); ok {
		return l.Name
	}
	return r.StandingsType
}

type TeamRecord struct {
	Team             Ref                     `json:"team"`
	LeagueRecord     LeagueRecord            `json:"leagueRecord"`
	GoalsAgainst     int                     `json:"goalsAgainst"`
	GoalsScored      int                     `json:"goalsScored"`
	Points           int                     `json:"points"`
	GamesPlayed      int                     `json:"gamesPlayed"`
	DivisionRank     optional.Value[string]  `json:"divisionRank"`
	ConferenceRank   optional.Value[string]  `json:"conferenceRank"`
	LeagueRank       optional.Value[string]  `json:"leagueRank"`
	WildCardRank     optional.Value[string]  `json:"wildCardRank"`
	Streak           optional.Value[Streak]  `json:"streak"`
	PointsPercentage optional.Value[float64] `json:"pointsPercentage"`
}

type Streak struct {
	StreakType   string `json:"streakType"`
	StreakNumber int    `json:"streakNumber"`
	StreakCode   string `json:"streakCode"`
}

// StandingsType names a /standings/{type} variant.
type StandingsType string

const (
	StandingsRegularSeason   StandingsType = "regularSeason"
	StandingsWildCard        StandingsType = "wildCard"
	StandingsDivisionLeaders StandingsType = "divisionLeaders"
	StandingsWildCardLeaders StandingsType = "wildCardWithLeaders"
	StandingsPreseason       StandingsType = "preseason"
	StandingsPostseason      StandingsType = "postseason"
	StandingsByDivision      StandingsType = "byDivision"
	StandingsByConference    StandingsType = "byConference"
	StandingsByLeague        StandingsType = "byLeague"
)

// GameFeed is the /game/{id}/feed/live document, trimmed to what we read.
type GameFeed struct {
	GamePk   int          `json:"gamePk"`
	MetaData FeedMetaData `json:"metaData"`
	GameData GameData     `json:"gameData"`
	LiveData LiveData     `json:"liveData"`
}

// CodedState is the game's current coded state.
func (f GameFeed) CodedState() CodedState {
	return f.GameData.Status.CodedGameState
}

// Watermark is the feed's timecode, the start point for the next diff.
func (f GameFeed) Watermark() string {
	return f.MetaData.TimeStamp
}

type FeedMetaData struct {
	Wait      int    `json:"wait"`
	TimeStamp string `json:"timeStamp"`
}

type GameData struct {
	Status   GameStatus          `json:"status"`
	Teams    FeedTeams           `json:"teams"`
	Datetime FeedDatetime        `json:"datetime"`
	Venue    optional.Value[Ref] `json:"venue"`
}

type FeedTeams struct {
	Away Team `json:"away"`
	Home Team `json:"home"`
}

type FeedDatetime struct {
	DateTime    time.Time                 `json:"dateTime"`
	EndDateTime optional.Value[time.Time] `json:"endDateTime"`
}

type LiveData struct {
	Plays     Plays                     `json:"plays"`
	Linescore optional.Value[Linescore] `json:"linescore"`
}

type Plays struct {
	ScoringPlays []int  `json:"scoringPlays"`
	AllPlays     []Play `json:"allPlays"`
}

type Linescore struct {
	CurrentPeriod              int                    `json:"currentPeriod"`
	CurrentPeriodOrdinal       optional.Value[string] `json:"currentPeriodOrdinal"`
	CurrentPeriodTimeRemaining optional.Value[string] `json:"currentPeriodTimeRemaining"`
	Teams                      LinescoreTeams         `json:"teams"`
}

type LinescoreTeams struct {
	Away LinescoreTeam `json:"away"`
	Home LinescoreTeam `json:"home"`
}

type LinescoreTeam struct {
	Team        Ref `json:"team"`
	Goals       int `json:"goals"`
	ShotsOnGoal int `json:"shotsOnGoal"`
}

// Play is one event of the live feed; diff values that add a play decode into it.
type Play struct {
	Result  PlayResult          `json:"result"`
	About   PlayAbout           `json:"about"`
	Team    optional.Value[Ref] `json:"team"`
	Players []PlayPlayer        `json:"players"`
}

// IsGoal reports whether the play is a goal event.
func (p Play) IsGoal() bool {
	return strings.EqualFold(p.Result.EventTypeID, "GOAL")
}

// Scorer returns the player credited with the goal, when listed.
func (p Play) Scorer() (Ref, bool) {
	for _, pl := range p.Players {
		if strings.EqualFold(pl.PlayerType, "Scorer") {
			return pl.Player, true
		}
	}
	return Ref{}, false
}

type PlayResult struct {
	Event       string                   `json:"event"`
	EventTypeID string                   `json:"eventTypeId"`
	Description string                   `json:"description"`
	Strength    optional.Value[Strength] `json:"strength"`
}

type Strength struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PlayAbout struct {
	Period     int       `json:"period"`
	PeriodTime string    `json:"periodTime"`
	Goals      ScoreLine `json:"goals"`
}

type ScoreLine struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

type PlayPlayer struct {
	Player     Ref    `json:"player"`
	PlayerType string `json:"playerType"`
}

// DiffContainer is one element of the diffPatch array.
type DiffContainer struct {
	Diff []DiffEntry `json:"diff"`
}

// DiffEntry is a JSON-patch style change. Value stays raw until inspected.
type DiffEntry struct {
	Op    string              `json:"op"`
	Path  string              `json:"path"`
	Value jsoniter.RawMessage `json:"value"`
}
