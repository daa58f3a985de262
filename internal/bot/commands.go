package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nhl-discord-bot/internal/embeds"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/lookup"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/timeutil"
)

// Plain-text replies.
const (
	msgTeamNotFound   = "Team not found."
	msgPlayerNotFound = "Player not found."
	msgNoData         = "No data available right now, try again later."
	msgNoGameToday    = "No game today."
	msgUnknownKind    = "Unknown standings type. Try division, conference, league or wildcard."
)

var standingsAliases = map[string]statsapi.StandingsType{
	"division":   statsapi.StandingsByDivision,
	"conference": statsapi.StandingsByConference,
	"league":     statsapi.StandingsByLeague,
	"wildcard":   statsapi.StandingsWildCard,
	"leaders":    statsapi.StandingsDivisionLeaders,
	"preseason":  statsapi.StandingsPreseason,
	"playoffs":   statsapi.StandingsPostseason,
}

func (b *Bot) commandSet() []command {
	return []command{
		{name: "help", help: embeds.CommandHelp{Usage: "help", Description: "List commands."}, run: b.help},
		{name: "schedule", help: embeds.CommandHelp{Usage: "schedule [team] [YYYY-MM-DD]", Description: "Games for a date, today by default."}, run: b.schedule},
		{name: "team", help: embeds.CommandHelp{Usage: "team <name>", Description: "Team profile and season stats."}, run: b.team},
		{name: "player", help: embeds.CommandHelp{Usage: "player <team> <name or number>", Description: "Player bio and season stats."}, run: b.player},
		{name: "standings", help: embeds.CommandHelp{Usage: "standings [division|conference|league|wildcard]", Description: "League standings."}, run: b.standings},
		{name: "game", help: embeds.CommandHelp{Usage: "game <team>", Description: "Today's game for a team."}, run: b.game},
		{name: "watching", help: embeds.CommandHelp{Usage: "watching", Description: "Games the bot is following."}, run: b.watching},
	}
}

func (b *Bot) help(_ context.Context, req *request) error {
	helps := make([]embeds.CommandHelp, len(b.commands))
	for i, c := range b.commands {
		helps[i] = c.help
	}
	return req.replyEmbed(embeds.Help(b.prefix, helps))
}

func (b *Bot) schedule(ctx context.Context, req *request) error {
	date := timeutil.Today(b.now(), b.loc)
	var teamWords []string
	for _, arg := range req.args {
		if _, err := timeutil.ParseDate(arg); err == nil {
			date = arg
			continue
		}
		teamWords = append(teamWords, arg)
	}

	q := statsapi.ScheduleQuery{Date: date}
	if len(teamWords) > 0 {
		team, ok, err := b.findTeam(ctx, strings.Join(teamWords, " "))
		if err != nil {
			return b.upstreamFailed(req, err)
		}
		if !ok {
			return req.reply(msgTeamNotFound)
		}
		q.TeamID = team.ID
	}

	sched, err := b.client.Schedule(ctx, q)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	return req.replyEmbed(embeds.Schedule(date, sched.Games(), b.loc))
}

func (b *Bot) team(ctx context.Context, req *request) error {
	if len(req.args) == 0 {
		return req.reply(b.usage("team"))
	}
	team, ok, err := b.findTeam(ctx, strings.Join(req.args, " "))
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	if !ok {
		return req.reply(msgTeamNotFound)
	}
	stats, err := b.client.TeamStats(ctx, team.ID)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	return req.replyEmbed(embeds.Team(team, stats))
}

func (b *Bot) player(ctx context.Context, req *request) error {
	if len(req.args) < 2 {
		return req.reply(b.usage("player"))
	}
	team, ok, err := b.findTeam(ctx, req.args[0])
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	if !ok {
		return req.reply(msgTeamNotFound)
	}

	detail, err := b.client.Team(ctx, team.ID, true)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	roster, _ := detail.Roster.Get()
	entry, ok := lookup.FindPlayer(roster.Roster, strings.Join(req.args[1:], " "))
	if !ok {
		return req.reply(msgPlayerNotFound)
	}

	person, err := b.client.Person(ctx, entry.Person.ID)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	season := timeutil.Season(b.now().In(b.loc))
	stats, err := b.client.PlayerStats(ctx, person.ID, season)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	return req.replyEmbed(embeds.Player(person, stats, season))
}

func (b *Bot) standings(ctx context.Context, req *request) error {
	var (
		st   statsapi.Standings
		err  error
		kind statsapi.StandingsType
	)
	if len(req.args) > 0 {
		alias := strings.ToLower(req.args[0])
		k, ok := standingsAliases[alias]
		if !ok {
			return req.reply(msgUnknownKind)
		}
		kind = k
		st, err = b.client.CustomStandings(ctx, kind)
	} else {
		st, err = b.client.Standings(ctx)
	}
	if err != nil {
		return b.upstreamFailed(req, err)
	}

	title := "Standings"
	if kind != "" {
		title = fmt.Sprintf("Standings (%s)", req.args[0])
	}
	return req.replyEmbed(embeds.Standings(title, st))
}

func (b *Bot) game(ctx context.Context, req *request) error {
	if len(req.args) == 0 {
		return req.reply(b.usage("game"))
	}
	team, ok, err := b.findTeam(ctx, strings.Join(req.args, " "))
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	if !ok {
		return req.reply(msgTeamNotFound)
	}

	sched, err := b.client.Schedule(ctx, statsapi.ScheduleQuery{
		Date:   timeutil.Today(b.now(), b.loc),
		TeamID: team.ID,
	})
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	games := sched.Games()
	if len(games) == 0 {
		return req.reply(msgNoGameToday)
	}

	feed, err := b.client.GameFeed(ctx, games[0].GamePk)
	if err != nil {
		return b.upstreamFailed(req, err)
	}
	return req.replyEmbed(embeds.Game(feed))
}

func (b *Bot) watching(_ context.Context, req *request) error {
	if b.watcher == nil {
		return req.reply(msgNoData)
	}
	return req.replyEmbed(embeds.Watching(b.watcher.Snapshot()))
}

func (b *Bot) findTeam(ctx context.Context, query string) (statsapi.Team, bool, error) {
	teams, err := b.client.Teams(ctx)
	if err != nil {
		return statsapi.Team{}, false, err
	}
	team, ok := lookup.FindTeam(teams, query)
	return team, ok, nil
}

// upstreamFailed degrades a failed fetch to a plain-text reply. Only a
// failure to send that reply surfaces as a command error.
func (b *Bot) upstreamFailed(req *request, err error) error {
	logging.Warn(b.logger, "command fetch failed",
		logging.FieldChannelID, req.ChannelID,
		logging.FieldError, err,
	)
	if statsapi.IsNotFound(err) {
		return req.reply("Not found.")
	}
	return req.reply(msgNoData)
}

func (b *Bot) usage(name string) string {
	return "Usage: " + b.prefix + b.byName[name].help.Usage
}
