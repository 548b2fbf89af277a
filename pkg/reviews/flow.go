package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/voidstudios/voidbot/models"
	"github.com/voidstudios/voidbot/store"
)

// Messenger covers the two sends the flow performs: the review request DM and
// the public summary post.
type Messenger interface {
	SendDM(userID string, msg *discordgo.MessageSend) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
}

// UserResolver turns a user ID into a display name for the public post.
type UserResolver interface {
	Username(userID string) (string, error)
}

// Config is the flow's construction-time configuration.
type Config struct {
	PublicChannelID string
	Timeout         time.Duration
	// CategoryLabels maps ticket category IDs to the label shown on public
	// posts. Unknown categories fall back to a generic support label.
	CategoryLabels map[string]string
}

type stage int

const (
	stageRating stage = iota
	stageComment
)

// session is one in-flight review request. Sessions live in memory only; a
// restart drops them and the request silently expires.
type session struct {
	id        string
	ticketID  int
	userID    string
	rating    int
	stage     stage
	committed bool
	deadline  time.Time
}

// Flow runs the post-ticket review sequence: solicit a rating by DM, offer a
// comment step, commit exactly one Review per ticket, then post a public
// summary. Each instance expires after the configured inactivity timeout.
type Flow struct {
	store  *store.Store
	msgr   Messenger
	users  UserResolver
	logger *slog.Logger

	mu              sync.Mutex
	sessions        map[string]*session
	publicChannelID string

	timeout time.Duration
	labels  map[string]string
	now     func() time.Time
	newID   func() string
}

func NewFlow(s *store.Store, msgr Messenger, users UserResolver, cfg Config, logger *slog.Logger) *Flow {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &Flow{
		store:           s,
		msgr:            msgr,
		users:           users,
		logger:          logger,
		sessions:        make(map[string]*session),
		publicChannelID: cfg.PublicChannelID,
		timeout:         timeout,
		labels:          cfg.CategoryLabels,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// SetPublicChannel overrides where public summaries are posted until the next
// restart. Persistent configuration lives in the config file.
func (f *Flow) SetPublicChannel(channelID string) {
	f.mu.Lock()
	f.publicChannelID = channelID
	f.mu.Unlock()
}

// Solicit DMs the ticket owner a rating request. If the DM cannot be
// delivered the ticket is marked review-sent anyway so closure never retries.
func (f *Flow) Solicit(ctx context.Context, ticket *models.Ticket) error {
	f.pruneExpired()

	sess := &session{
		id:       f.newID(),
		ticketID: ticket.ID,
		userID:   ticket.UserID,
		stage:    stageRating,
		deadline: f.now().Add(f.timeout),
	}

	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{requestEmbed()},
		Components: ratingComponents(sess.id),
	}
	if err := f.msgr.SendDM(ticket.UserID, msg); err != nil {
		f.logger.Warn("could not DM review request, suppressing future requests",
			"user_id", ticket.UserID, "ticket_id", ticket.ID, "error", err)
		ticket.ReviewSent = true
		return f.store.SaveTicket(ctx, ticket)
	}

	f.mu.Lock()
	f.sessions[sess.id] = sess
	f.mu.Unlock()

	f.logger.Info("sent review request", "user_id", ticket.UserID, "ticket_id", ticket.ID)
	return nil
}

// Advance applies a user action to the flow instance identified by sessionID
// and returns what to render next. Unknown or timed-out sessions yield
// StepExpired; their interactive elements are inert from then on.
func (f *Flow) Advance(ctx context.Context, sessionID string, action Action) (*StepResult, error) {
	f.mu.Lock()
	sess, ok := f.sessions[sessionID]
	if !ok {
		f.mu.Unlock()
		return &StepResult{Kind: StepExpired}, nil
	}
	if f.now().After(sess.deadline) {
		delete(f.sessions, sessionID)
		f.mu.Unlock()
		return &StepResult{Kind: StepExpired}, nil
	}

	switch action.Kind {
	case ActionRated:
		if action.Rating < 1 || action.Rating > 5 {
			f.mu.Unlock()
			return nil, fmt.Errorf("rating out of range: %d", action.Rating)
		}
		sess.rating = action.Rating
		sess.stage = stageComment
		sess.deadline = f.now().Add(f.timeout)
		f.mu.Unlock()
		return &StepResult{Kind: StepPromptComment, Rating: action.Rating}, nil

	case ActionSkipped:
		delete(f.sessions, sessionID)
		f.mu.Unlock()
		if err := f.markReviewSent(ctx, sess.ticketID); err != nil {
			return nil, err
		}
		f.logger.Info("review request skipped", "ticket_id", sess.ticketID)
		return &StepResult{Kind: StepSkipped}, nil

	case ActionCommentRequested:
		if sess.stage != stageComment {
			f.mu.Unlock()
			return &StepResult{Kind: StepExpired}, nil
		}
		sess.deadline = f.now().Add(f.timeout)
		rating := sess.rating
		f.mu.Unlock()
		return &StepResult{Kind: StepOpenCommentModal, Rating: rating}, nil

	case ActionNoComment, ActionCommentSubmitted:
		// Sole commit point. The committed flag is consumed under the lock so
		// the button path and the modal path cannot both write a Review.
		if sess.stage != stageComment || sess.committed {
			f.mu.Unlock()
			return &StepResult{Kind: StepExpired}, nil
		}
		sess.committed = true
		delete(f.sessions, sessionID)
		rating := sess.rating
		ticketID := sess.ticketID
		userID := sess.userID
		f.mu.Unlock()

		var comment *string
		if action.Kind == ActionCommentSubmitted {
			if trimmed := strings.TrimSpace(action.Comment); trimmed != "" {
				comment = &trimmed
			}
		}
		review := &models.Review{
			TicketID: ticketID,
			UserID:   userID,
			Rating:   rating,
			Comment:  comment,
		}
		if err := f.store.CreateReview(ctx, review); err != nil {
			return nil, err
		}
		ticket, err := f.markAndGetTicket(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		f.logger.Info("review submitted", "ticket_id", ticketID, "rating", rating)

		go f.publish(review, ticket)

		return &StepResult{Kind: StepDone, Rating: rating, Review: review}, nil
	}

	f.mu.Unlock()
	return nil, fmt.Errorf("unknown action kind: %d", action.Kind)
}

func (f *Flow) markReviewSent(ctx context.Context, ticketID int) error {
	_, err := f.markAndGetTicket(ctx, ticketID)
	return err
}

func (f *Flow) markAndGetTicket(ctx context.Context, ticketID int) (*models.Ticket, error) {
	ticket, err := f.store.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %d not found", ticketID)
	}
	if !ticket.ReviewSent {
		ticket.ReviewSent = true
		if err := f.store.SaveTicket(ctx, ticket); err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

// publish posts the public summary. Failures are logged and never roll back
// the committed review.
func (f *Flow) publish(review *models.Review, ticket *models.Ticket) {
	f.mu.Lock()
	channelID := f.publicChannelID
	f.mu.Unlock()
	if channelID == "" {
		f.logger.Warn("no public review channel configured")
		return
	}

	username := "Anonymous User"
	if name, err := f.users.Username(review.UserID); err == nil && name != "" {
		username = name
	}

	embed := publicEmbed(review, username, f.categoryLabel(ticket.CategoryID))
	if _, err := f.msgr.SendEmbed(channelID, embed); err != nil {
		f.logger.Error("failed to post public review", "review_id", review.ID, "error", err)
		return
	}
	f.logger.Info("posted public review", "review_id", review.ID, "channel_id", channelID)
}

func (f *Flow) categoryLabel(categoryID string) string {
	if label, ok := f.labels[categoryID]; ok {
		return label
	}
	return defaultCategoryLabel
}

// pruneExpired drops timed-out sessions. Called opportunistically from
// Solicit; expiry is also checked on every Advance.
func (f *Flow) pruneExpired() {
	now := f.now()
	f.mu.Lock()
	for id, sess := range f.sessions {
		if now.After(sess.deadline) {
			delete(f.sessions, id)
		}
	}
	f.mu.Unlock()
}
