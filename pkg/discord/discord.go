package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/config"
	"github.com/voidstudios/voidbot/pkg/queue"
	"github.com/voidstudios/voidbot/pkg/reviews"
	"github.com/voidstudios/voidbot/pkg/tickets"
	"github.com/voidstudios/voidbot/store"
)

const colorBlurple = 0x5865F2

type commandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate) error

// Bot wires the Discord session to the store, the queue manager, the ticket
// tracker and the review flow, and dispatches every inbound event.
type Bot struct {
	session *discordgo.Session
	store   *store.Store
	cfg     *config.Config
	queue   *queue.Manager
	tracker *tickets.Tracker
	flow    *reviews.Flow
	logger  *slog.Logger

	commands map[string]commandHandler
}

// New creates the Discord session and the components behind it.
func New(cfg *config.Config, s *store.Store, logger *slog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages

	msgr := sessionMessenger{dg}
	users := sessionUserResolver{dg}

	b := &Bot{
		session: dg,
		store:   s,
		cfg:     cfg,
		logger:  logger,
	}
	b.queue = queue.NewManager(s, msgr, cfg.Queue.ChannelID)
	b.flow = reviews.NewFlow(s, msgr, users, reviews.Config{
		PublicChannelID: cfg.Reviews.PublicChannelID,
		Timeout:         time.Duration(cfg.Reviews.RequestTimeoutSeconds) * time.Second,
		CategoryLabels:  cfg.Reviews.CategoryLabels,
	}, logger)
	b.tracker = tickets.NewTracker(s, b.flow, users, cfg.Reviews.TicketCategoryIDs, logger)

	b.commands = map[string]commandHandler{
		"pay":     b.handlePay,
		"ping":    b.handlePing,
		"queue":   b.handleQueue,
		"vouch":   b.handleVouch,
		"reviews": b.handleReviews,
	}

	dg.AddHandler(b.onInteraction)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onChannelDelete)

	return b, nil
}

// Open connects the gateway session and registers the slash commands.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	_, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID, b.cfg.Discord.GuildID, commandDefinitions())
	if err != nil {
		b.logger.Error("failed to register slash commands", "error", err)
		return err
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// onInteraction routes slash commands, autocompletes, buttons and modals.
// Handler errors never crash the process: they are logged and answered with a
// generic ephemeral failure.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		handler, ok := b.commands[name]
		if !ok {
			b.logger.Warn("unrecognized command", "name", name)
			return
		}
		err = handler(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name == "pay" {
			err = b.handlePayAutocomplete(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if reviews.IsFlowCustomID(i.MessageComponentData().CustomID) {
			err = b.handleReviewComponent(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if reviews.IsFlowCustomID(i.ModalSubmitData().CustomID) {
			err = b.handleReviewModal(s, i)
		}
	}
	if err != nil {
		b.logger.Error("interaction handler failed", "error", err)
		b.replyEphemeral(s, i, "Something went wrong, please try again.")
	}
}

// onMessageCreate feeds ticket-system messages into the lifecycle tracker.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	channel, err := s.State.Channel(m.ChannelID)
	if err != nil {
		channel, err = s.Channel(m.ChannelID)
		if err != nil {
			return
		}
	}
	mentions := make([]tickets.Mention, 0, len(m.Mentions))
	for _, user := range m.Mentions {
		mentions = append(mentions, tickets.Mention{ID: user.ID, Bot: user.Bot})
	}
	msg := tickets.Message{
		ChannelID:  m.ChannelID,
		CategoryID: channel.ParentID,
		AuthorBot:  m.Author.Bot,
		Content:    m.Content,
		Mentions:   mentions,
	}
	if err := b.tracker.HandleMessage(context.Background(), msg); err != nil {
		b.logger.Error("failed to track ticket message", "channel_id", m.ChannelID, "error", err)
	}
}

// onChannelDelete treats ticket channel deletions as ticket closures.
func (b *Bot) onChannelDelete(s *discordgo.Session, c *discordgo.ChannelDelete) {
	if c.Type != discordgo.ChannelTypeGuildText {
		return
	}
	if err := b.tracker.HandleChannelDelete(context.Background(), c.ID, c.ParentID); err != nil {
		b.logger.Error("failed to handle ticket closure", "channel_id", c.ID, "error", err)
	}
}

func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to send interaction reply", "error", err)
	}
}

func (b *Bot) replyEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
