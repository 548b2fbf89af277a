package tickets

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/voidstudios/voidbot/models"
	"github.com/voidstudios/voidbot/store"
)

// Solicitor is invoked when a ticket closes without a review having been
// requested yet.
type Solicitor interface {
	Solicit(ctx context.Context, ticket *models.Ticket) error
}

// UserResolver reports whether a user ID belongs to a bot account. Used when
// owner inference has to fall back to raw mention text.
type UserResolver interface {
	IsBot(userID string) (bool, error)
}

// Message is the slice of an inbound gateway message the tracker cares about.
type Message struct {
	ChannelID  string
	CategoryID string
	AuthorBot  bool
	Content    string
	Mentions   []Mention
}

type Mention struct {
	ID  string
	Bot bool
}

var mentionPattern = regexp.MustCompile(`<@(\d+)>`)

// Tracker maintains one Ticket per support channel. Tickets move from created
// to closed exactly once; there is no reopening.
type Tracker struct {
	store      *store.Store
	flow       Solicitor
	users      UserResolver
	categories map[string]struct{}
	logger     *slog.Logger
	now        func() time.Time
}

func NewTracker(s *store.Store, flow Solicitor, users UserResolver, categoryIDs []string, logger *slog.Logger) *Tracker {
	categories := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		categories[id] = struct{}{}
	}
	return &Tracker{
		store:      s,
		flow:       flow,
		users:      users,
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

// InTicketCategory reports whether the category is configured for tickets.
func (t *Tracker) InTicketCategory(categoryID string) bool {
	_, ok := t.categories[categoryID]
	return ok
}

// HandleMessage watches for the ticket system's opening message in a ticket
// channel and records the requesting user. The ticket owner is the first
// non-bot mention; if the mention list is empty the raw content is scanned for
// <@id> instead. Channels whose owner cannot be resolved are skipped and may
// never be tracked.
func (t *Tracker) HandleMessage(ctx context.Context, msg Message) error {
	if !msg.AuthorBot {
		return nil
	}
	if !t.InTicketCategory(msg.CategoryID) {
		return nil
	}

	existing, err := t.store.GetTicketByChannel(ctx, msg.ChannelID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	ownerID := ""
	for _, mention := range msg.Mentions {
		if !mention.Bot {
			ownerID = mention.ID
			break
		}
	}
	if ownerID == "" && len(msg.Mentions) == 0 {
		matches := mentionPattern.FindAllStringSubmatch(msg.Content, -1)
		if len(matches) > 0 {
			id := matches[0][1]
			bot, err := t.users.IsBot(id)
			if err != nil {
				t.logger.Warn("could not resolve first mention in ticket channel",
					"channel_id", msg.ChannelID, "error", err)
				return nil
			}
			if bot {
				t.logger.Warn("first mention in ticket channel is not a regular user",
					"channel_id", msg.ChannelID)
				return nil
			}
			ownerID = id
		}
	}
	if ownerID == "" {
		t.logger.Warn("no user mentions found in first message of ticket channel",
			"channel_id", msg.ChannelID)
		return nil
	}

	ticket := &models.Ticket{
		ChannelID:  msg.ChannelID,
		UserID:     ownerID,
		CategoryID: msg.CategoryID,
	}
	if err := t.store.CreateTicket(ctx, ticket); err != nil {
		return err
	}
	t.logger.Info("created ticket record",
		"channel_id", msg.ChannelID, "user_id", ownerID)
	return nil
}

// HandleChannelDelete treats deletion of a ticket channel as ticket closure:
// the closure time is stamped and, unless a review was already requested, the
// owner is asked for one.
func (t *Tracker) HandleChannelDelete(ctx context.Context, channelID, categoryID string) error {
	if !t.InTicketCategory(categoryID) {
		return nil
	}
	t.logger.Info("detected ticket channel deletion", "channel_id", channelID)

	ticket, err := t.store.GetTicketByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if ticket == nil {
		t.logger.Warn("no ticket found for deleted channel", "channel_id", channelID)
		return nil
	}

	closedAt := t.now()
	ticket.ClosedAt = &closedAt
	if err := t.store.SaveTicket(ctx, ticket); err != nil {
		return err
	}

	if ticket.ReviewSent {
		t.logger.Info("review already sent for ticket", "ticket_id", ticket.ID)
		return nil
	}
	return t.flow.Solicit(ctx, ticket)
}

// Associate creates or overrides the ticket owner for a channel. Admin
// override for channels the automatic inference missed or got wrong.
func (t *Tracker) Associate(ctx context.Context, channelID, categoryID, userID string) error {
	ticket, err := t.store.GetTicketByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return t.store.CreateTicket(ctx, &models.Ticket{
			ChannelID:  channelID,
			UserID:     userID,
			CategoryID: categoryID,
		})
	}
	ticket.UserID = userID
	return t.store.SaveTicket(ctx, ticket)
}
