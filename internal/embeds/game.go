package embeds

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// Game summarises a live feed: score, period, clock and shots.
func Game(feed statsapi.GameFeed) *discordgo.MessageEmbed {
	away := feed.GameData.Teams.Away
	home := feed.GameData.Teams.Home
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s @ %s", away.Name, home.Name),
		Description: feed.GameData.Status.DetailedState,
		Color:       colorLeague,
	}
	if feed.CodedState().IsLive() {
		embed.Color = colorLive
	}

	ls, ok := feed.LiveData.Linescore.Get()
	if !ok {
		embed.Fields = []*discordgo.MessageEmbedField{field("Score", "Not started", false)}
		return embed
	}

	period := ls.CurrentPeriodOrdinal.OrElse(missing)
	if remaining, ok := ls.CurrentPeriodTimeRemaining.Get(); ok {
		period += " " + remaining
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		field(away.Abbreviation, strconv.Itoa(ls.Teams.Away.Goals), true),
		field(home.Abbreviation, strconv.Itoa(ls.Teams.Home.Goals), true),
		field("Period", period, false),
		field("Shots", fmt.Sprintf("%s %d - %d %s", away.Abbreviation, ls.Teams.Away.ShotsOnGoal, ls.Teams.Home.ShotsOnGoal, home.Abbreviation), false),
	}
	return embed
}

// Goal announces one scoring play.
func Goal(id watch.GameID, goal watch.Goal) *discordgo.MessageEmbed {
	play := goal.Play
	title := "GOAL!"
	if team, ok := play.Team.Get(); ok && team.Name != "" {
		title = "GOAL! " + team.Name
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: play.Result.Description,
		Color:       colorGoal,
		Fields: []*discordgo.MessageEmbedField{
			field("Period", fmt.Sprintf("%d @ %s", play.About.Period, play.About.PeriodTime), true),
			field("Score", fmt.Sprintf("%d - %d", play.About.Goals.Away, play.About.Goals.Home), true),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Game " + strconv.Itoa(int(id))},
	}
	if scorer, ok := play.Scorer(); ok {
		embed.Fields = append([]*discordgo.MessageEmbedField{field("Scorer", scorer.Name, true)}, embed.Fields...)
	}
	if strength, ok := play.Result.Strength.Get(); ok && strength.Name != "" {
		embed.Fields = append(embed.Fields, field("Strength", strength.Name, true))
	}
	return embed
}
