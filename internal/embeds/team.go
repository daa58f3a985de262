package embeds

import (
	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// Team builds the team profile with its single-season stats.
func Team(team statsapi.Team, stats []statsapi.StatGroup) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: team.Name,
		Color: colorLeague,
	}
	if site, ok := team.OfficialSiteURL.Get(); ok {
		embed.URL = site
	}

	fields := []*discordgo.MessageEmbedField{
		field("Abbreviation", team.Abbreviation, true),
	}
	if d, ok := team.Division.Get(); ok {
		fields = append(fields, field("Division", d.Name, true))
	}
	if c, ok := team.Conference.Get(); ok {
		fields = append(fields, field("Conference", c.Name, true))
	}
	if v, ok := team.Venue.Get(); ok {
		fields = append(fields, field("Venue", v.Name, true))
	}
	if y, ok := team.FirstYearOfPlay.Get(); ok {
		fields = append(fields, field("First season", y, true))
	}

	if split, ok := firstSplit(stats, "statsSingleSeason"); ok {
		fields = append(fields, statFields(split.Stat, teamStatKeys)...)
	} else {
		embed.Description = "No season stats available."
	}
	embed.Fields = capFields(fields)
	return embed
}
