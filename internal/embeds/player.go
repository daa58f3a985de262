package embeds

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

const goaliePosition = "G"

// Player builds a player's bio and single-season line.
func Player(p statsapi.Person, stats []statsapi.StatGroup, season string) *discordgo.MessageEmbed {
	title := p.FullName
	if num, ok := p.PrimaryNumber.Get(); ok {
		title = fmt.Sprintf("#%s %s", num, p.FullName)
	}
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: colorLeague,
	}

	var fields []*discordgo.MessageEmbedField
	pos, hasPos := p.PrimaryPosition.Get()
	if hasPos {
		fields = append(fields, field("Position", pos.Name, true))
	}
	if team, ok := p.CurrentTeam.Get(); ok {
		fields = append(fields, field("Team", team.Name, true))
	}
	if age, ok := p.CurrentAge.Get(); ok {
		fields = append(fields, field("Age", strconv.Itoa(age), true))
	}
	if h, ok := p.Height.Get(); ok {
		fields = append(fields, field("Height", h, true))
	}
	if w, ok := p.Weight.Get(); ok {
		fields = append(fields, field("Weight", strconv.Itoa(w)+" lb", true))
	}
	if sc, ok := p.ShootsCatches.Get(); ok {
		label := "Shoots"
		if hasPos && pos.Abbreviation == goaliePosition {
			label = "Catches"
		}
		fields = append(fields, field(label, sc, true))
	}
	if nat, ok := p.Nationality.Get(); ok {
		fields = append(fields, field("Nationality", nat, true))
	}

	keys := skaterStatKeys
	if hasPos && pos.Abbreviation == goaliePosition {
		keys = goalieStatKeys
	}
	if split, ok := firstSplit(stats, ""); ok {
		fields = append(fields, statFields(split.Stat, keys)...)
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Season " + formatSeason(split.Season.OrElse(season))}
	} else {
		embed.Description = "No stats for " + formatSeason(season) + "."
	}
	embed.Fields = capFields(fields)
	return embed
}

// formatSeason renders "20232024" as "2023-24".
func formatSeason(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[6:]
}
