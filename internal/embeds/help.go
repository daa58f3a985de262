package embeds

import (
	"github.com/bwmarrin/discordgo"
)

// CommandHelp describes one chat command.
type CommandHelp struct {
	Usage       string
	Description string
}

// Help lists the commands, each usage prefixed.
func Help(prefix string, commands []CommandHelp) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(commands))
	for _, c := range commands {
		fields = append(fields, field(prefix+c.Usage, c.Description, false))
	}
	return &discordgo.MessageEmbed{
		Title:  "Commands",
		Color:  colorLeague,
		Fields: capFields(fields),
	}
}
