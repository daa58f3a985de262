package embeds

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// Watching shows which games sit in which watch table.
func Watching(snap watch.Snapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Watched games",
		Color: colorLeague,
	}
	if snap.Len() == 0 {
		embed.Description = "Not watching any games."
		return embed
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		field(watch.Scheduled.String(), joinIDs(snap.Scheduled), false),
		field(watch.Pregame.String(), joinIDs(snap.Pregame), false),
		field(watch.InProgress.String(), joinIDs(snap.InProgress), false),
	}
	return embed
}

func joinIDs(ids []watch.GameID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ", ")
}
