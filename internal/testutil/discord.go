package testutil

import (
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// SentMessage is one outbound message captured by RecordingSender.
type SentMessage struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// Reaction is one reaction captured by RecordingSender.
type Reaction struct {
	ChannelID string
	MessageID string
	Emoji     string
}

// RecordingSender captures what a handler sends to the chat platform.
type RecordingSender struct {
	mu        sync.Mutex
	messages  []SentMessage
	reactions []Reaction
	// Err, when set, fails every send.
	Err error
}

func (r *RecordingSender) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return r.record(SentMessage{ChannelID: channelID, Content: content})
}

func (r *RecordingSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return r.record(SentMessage{ChannelID: channelID, Embed: embed})
}

func (r *RecordingSender) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.reactions = append(r.reactions, Reaction{ChannelID: channelID, MessageID: messageID, Emoji: emojiID})
	return nil
}

func (r *RecordingSender) record(msg SentMessage) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.messages = append(r.messages, msg)
	return &discordgo.Message{ID: "m" + strconv.Itoa(len(r.messages)), ChannelID: msg.ChannelID, Content: msg.Content}, nil
}

// Messages returns the captured messages in send order.
func (r *RecordingSender) Messages() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentMessage(nil), r.messages...)
}

// Reactions returns the captured reactions in order.
func (r *RecordingSender) Reactions() []Reaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reaction(nil), r.reactions...)
}

// LastEmbed returns the most recent embed, or nil.
func (r *RecordingSender) LastEmbed() *discordgo.MessageEmbed {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].Embed != nil {
			return r.messages[i].Embed
		}
	}
	return nil
}
