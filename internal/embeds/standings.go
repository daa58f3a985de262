package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// Standings renders each grouping with its teams in rank order. A grouping
// too long for one field continues in the next.
func Standings(title string, st statsapi.Standings) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: colorLeague,
	}
	if len(st.Records) == 0 {
		embed.Description = "No standings available."
		return embed
	}
	fields := make([]*discordgo.MessageEmbedField, 0, len(st.Records))
	for _, rec := range st.Records {
		var b strings.Builder
		for i, tr := range rec.TeamRecords {
			fmt.Fprintf(&b, "%d. %s %d pts (%s)", i+1, tr.Team.Name, tr.Points, tr.LeagueRecord)
			if streak, ok := tr.Streak.Get(); ok && streak.StreakCode != "" {
				b.WriteString(" " + streak.StreakCode)
			}
			b.WriteByte('\n')
		}
		fields = append(fields, splitField(rec.Heading(), b.String())...)
	}
	embed.Fields = capFields(fields)
	return embed
}
