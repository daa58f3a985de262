package embeds

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// Schedule lists a day's games, one field per game.
func Schedule(date string, games []statsapi.ScheduleGame, loc *time.Location) *discordgo.MessageEmbed {
	if loc == nil {
		loc = time.UTC
	}
	embed := &discordgo.MessageEmbed{
		Title: "Schedule for " + date,
		Color: colorLeague,
	}
	if len(games) == 0 {
		embed.Description = "No games scheduled."
		return embed
	}
	fields := make([]*discordgo.MessageEmbedField, 0, len(games))
	for _, g := range games {
		name := fmt.Sprintf("%s @ %s", g.Teams.Away.Team.Name, g.Teams.Home.Team.Name)
		fields = append(fields, field(name, scheduleLine(g, loc), false))
	}
	embed.Fields = capFields(fields)
	return embed
}

func scheduleLine(g statsapi.ScheduleGame, loc *time.Location) string {
	state := g.Status.CodedGameState
	var parts []string
	switch {
	case state.IsLive() || state.IsTerminal():
		away, aok := g.Teams.Away.Score.Get()
		home, hok := g.Teams.Home.Score.Get()
		if aok && hok {
			parts = append(parts, fmt.Sprintf("%d - %d", away, home))
		}
		parts = append(parts, g.Status.DetailedState)
	default:
		parts = append(parts, g.GameDate.In(loc).Format("3:04 PM MST"))
		if g.Status.DetailedState != "" && state != statsapi.StatePreview {
			parts = append(parts, g.Status.DetailedState)
		}
	}
	if venue, ok := g.Venue.Get(); ok && venue.Name != "" {
		parts = append(parts, venue.Name)
	}
	return strings.Join(parts, " | ")
}
