package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/embeds"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// EmbedSender is the part of a discordgo session the Discord sink needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink posts one embed per goal to a fixed channel.
type DiscordSink struct {
	sender    EmbedSender
	channelID string
}

func NewDiscordSink(sender EmbedSender, channelID string) *DiscordSink {
	return &DiscordSink{sender: sender, channelID: channelID}
}

func (s *DiscordSink) PublishGoals(ctx context.Context, id watch.GameID, goals []watch.Goal) error {
	var errs []error
	for _, g := range goals {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.sender.ChannelMessageSendEmbed(s.channelID, embeds.Goal(id, g)); err != nil {
			errs = append(errs, fmt.Errorf("send goal %s: %w", g.Path, err))
		}
	}
	return errors.Join(errs...)
}
