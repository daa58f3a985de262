// Package bot turns prefixed chat messages into stats lookups and replies.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/embeds"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

// FailureReaction marks a message whose command failed unexpectedly.
const FailureReaction = "⚠️"

const defaultCommandTimeout = 20 * time.Second

// Sender is the part of a discordgo session handlers reply through.
type Sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

// StatsClient is the read side of the stats API the commands use.
type StatsClient interface {
	Schedule(ctx context.Context, q statsapi.ScheduleQuery) (statsapi.Schedule, error)
	Teams(ctx context.Context) ([]statsapi.Team, error)
	Team(ctx context.Context, id int, expandRoster bool) (statsapi.Team, error)
	TeamStats(ctx context.Context, id int) ([]statsapi.StatGroup, error)
	Person(ctx context.Context, id int) (statsapi.Person, error)
	PlayerStats(ctx context.Context, id int, season string) ([]statsapi.StatGroup, error)
	Standings(ctx context.Context) (statsapi.Standings, error)
	CustomStandings(ctx context.Context, kind statsapi.StandingsType) (statsapi.Standings, error)
	GameFeed(ctx context.Context, id int) (statsapi.GameFeed, error)
}

// Watcher exposes the watch tables for the watching command.
type Watcher interface {
	Snapshot() watch.Snapshot
}

// Recorder receives one observation per handled command.
type Recorder interface {
	RecordCommand(command string, duration time.Duration, err error)
}

// Config wires a Bot.
type Config struct {
	Prefix   string
	Client   StatsClient
	Watcher  Watcher
	Logger   *slog.Logger
	Metrics  Recorder
	Location *time.Location
	Now      func() time.Time
	Timeout  time.Duration
}

// Message is the platform-neutral view of an incoming chat message.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	AuthorBot bool
	Content   string
}

type request struct {
	Message
	sender Sender
	args   []string
}

func (r *request) reply(content string) error {
	_, err := r.sender.ChannelMessageSend(r.ChannelID, content)
	return err
}

func (r *request) replyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := r.sender.ChannelMessageSendEmbed(r.ChannelID, embed)
	return err
}

type handlerFunc func(ctx context.Context, req *request) error

type command struct {
	name string
	help embeds.CommandHelp
	run  handlerFunc
}

// Bot dispatches prefixed commands to their handlers.
type Bot struct {
	prefix   string
	client   StatsClient
	watcher  Watcher
	logger   *slog.Logger
	metrics  Recorder
	loc      *time.Location
	now      func() time.Time
	timeout  time.Duration
	commands []command
	byName   map[string]command
}

// New constructs a Bot with the full command set.
func New(cfg Config) *Bot {
	b := &Bot{
		prefix:  cfg.Prefix,
		client:  cfg.Client,
		watcher: cfg.Watcher,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		loc:     cfg.Location,
		now:     cfg.Now,
		timeout: cfg.Timeout,
	}
	if b.prefix == "" {
		b.prefix = "!"
	}
	if b.loc == nil {
		b.loc = time.UTC
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.timeout <= 0 {
		b.timeout = defaultCommandTimeout
	}
	b.commands = b.commandSet()
	b.byName = make(map[string]command, len(b.commands))
	for _, c := range b.commands {
		b.byName[c.name] = c
	}
	return b
}

// HandleMessageCreate is the discordgo event handler.
func (b *Bot) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	b.Dispatch(context.Background(), s, Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		AuthorBot: m.Author.Bot,
		Content:   m.Content,
	})
}

// Dispatch runs the command named in msg, if any. It reports whether a
// command matched. Handler errors and panics are logged and answered with
// FailureReaction; they never reach the caller.
func (b *Bot) Dispatch(ctx context.Context, sender Sender, msg Message) bool {
	if msg.AuthorBot || !strings.HasPrefix(msg.Content, b.prefix) {
		return false
	}
	args := splitArgs(strings.TrimPrefix(msg.Content, b.prefix))
	if len(args) == 0 {
		return false
	}
	cmd, ok := b.byName[strings.ToLower(args[0])]
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	req := &request{Message: msg, sender: sender, args: args[1:]}
	start := b.now()
	err := b.run(ctx, cmd, req)
	if b.metrics != nil {
		b.metrics.RecordCommand(cmd.name, b.now().Sub(start), err)
	}
	if err != nil {
		logging.Error(b.logger, "command failed", err,
			logging.FieldCommand, cmd.name,
			logging.FieldChannelID, msg.ChannelID,
		)
		if rerr := sender.MessageReactionAdd(msg.ChannelID, msg.ID, FailureReaction); rerr != nil {
			logging.Warn(b.logger, "failure reaction not sent", logging.FieldError, rerr)
		}
		return true
	}
	logging.Debug(b.logger, "command handled",
		logging.FieldCommand, cmd.name,
		logging.FieldChannelID, msg.ChannelID,
		logging.FieldDurationMS, b.now().Sub(start).Milliseconds(),
	)
	return true
}

func (b *Bot) run(ctx context.Context, cmd command, req *request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", cmd.name, r)
		}
	}()
	return cmd.run(ctx, req)
}
