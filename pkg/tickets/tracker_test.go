package tickets

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voidstudios/voidbot/migrations"
	"github.com/voidstudios/voidbot/models"
	"github.com/voidstudios/voidbot/store"
)

type fakeSolicitor struct {
	solicited []*models.Ticket
}

func (f *fakeSolicitor) Solicit(ctx context.Context, ticket *models.Ticket) error {
	f.solicited = append(f.solicited, ticket)
	return nil
}

type fakeResolver struct {
	bots map[string]bool
	err  error
}

func (f fakeResolver) IsBot(userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.bots[userID], nil
}

func newTestTracker(t *testing.T, resolver UserResolver) (*Tracker, *store.Store, *fakeSolicitor) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.Migrate(db))

	s := store.New(db)
	flow := &fakeSolicitor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := NewTracker(s, flow, resolver, []string{"cat-1", "cat-2"}, logger)
	tracker.now = func() time.Time { return time.Unix(1700000000, 0) }
	return tracker, s, flow
}

func botMessage(channelID string, mentions ...Mention) Message {
	return Message{
		ChannelID:  channelID,
		CategoryID: "cat-1",
		AuthorBot:  true,
		Mentions:   mentions,
	}
}

func TestHandleMessageCreatesTicketFromFirstUserMention(t *testing.T) {
	tracker, s, _ := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	msg := botMessage("chan-1",
		Mention{ID: "bot-1", Bot: true},
		Mention{ID: "u1"},
		Mention{ID: "u2"},
	)
	require.NoError(t, tracker.HandleMessage(ctx, msg))

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.Equal(t, "u1", ticket.UserID)
	require.Equal(t, "cat-1", ticket.CategoryID)
	require.False(t, ticket.ReviewSent)
	require.Nil(t, ticket.ClosedAt)
}

func TestHandleMessageIgnoresNonBotAuthors(t *testing.T) {
	tracker, s, _ := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	msg := botMessage("chan-1", Mention{ID: "u1"})
	msg.AuthorBot = false
	require.NoError(t, tracker.HandleMessage(ctx, msg))

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Nil(t, ticket)
}

func TestHandleMessageIgnoresOtherCategories(t *testing.T) {
	tracker, s, _ := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	msg := botMessage("chan-1", Mention{ID: "u1"})
	msg.CategoryID = "general"
	require.NoError(t, tracker.HandleMessage(ctx, msg))

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Nil(t, ticket)
}

func TestHandleMessageKeepsExistingTicket(t *testing.T) {
	tracker, s, _ := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	require.NoError(t, tracker.HandleMessage(ctx, botMessage("chan-1", Mention{ID: "u1"})))
	require.NoError(t, tracker.HandleMessage(ctx, botMessage("chan-1", Mention{ID: "u2"})))

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.Equal(t, "u1", ticket.UserID)
}

func TestHandleMessageFallsBackToRawMentionText(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		resolver  fakeResolver
		wantOwner string
	}{
		{
			name:      "first raw mention wins",
			content:   "Welcome <@111> <@222>",
			resolver:  fakeResolver{bots: map[string]bool{}},
			wantOwner: "111",
		},
		{
			name:     "bot id is rejected",
			content:  "Welcome <@999>",
			resolver: fakeResolver{bots: map[string]bool{"999": true}},
		},
		{
			name:     "unresolvable id is skipped",
			content:  "Welcome <@111>",
			resolver: fakeResolver{err: context.DeadlineExceeded},
		},
		{
			name:     "no mentions at all",
			content:  "Welcome to your ticket",
			resolver: fakeResolver{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, s, _ := newTestTracker(t, tt.resolver)
			ctx := context.Background()

			msg := botMessage("chan-1")
			msg.Content = tt.content
			require.NoError(t, tracker.HandleMessage(ctx, msg))

			ticket, err := s.GetTicketByChannel(ctx, "chan-1")
			require.NoError(t, err)
			if tt.wantOwner == "" {
				require.Nil(t, ticket)
			} else {
				require.NotNil(t, ticket)
				require.Equal(t, tt.wantOwner, ticket.UserID)
			}
		})
	}
}

func TestChannelDeleteClosesTicketAndSolicitsReview(t *testing.T) {
	tracker, s, flow := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	require.NoError(t, tracker.HandleMessage(ctx, botMessage("chan-1", Mention{ID: "u1"})))
	require.NoError(t, tracker.HandleChannelDelete(ctx, "chan-1", "cat-1"))

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.NotNil(t, ticket.ClosedAt)
	require.Equal(t, time.Unix(1700000000, 0).Unix(), ticket.ClosedAt.Unix())
	require.Len(t, flow.solicited, 1)
	require.Equal(t, ticket.ID, flow.solicited[0].ID)
}

func TestChannelDeleteSkipsSolicitWhenReviewAlreadySent(t *testing.T) {
	tracker, s, flow := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	require.NoError(t, tracker.HandleMessage(ctx, botMessage("chan-1", Mention{ID: "u1"})))
	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	ticket.ReviewSent = true
	require.NoError(t, s.SaveTicket(ctx, ticket))

	require.NoError(t, tracker.HandleChannelDelete(ctx, "chan-1", "cat-1"))
	require.Empty(t, flow.solicited)

	// Closure is still stamped even though no review is requested.
	ticket, err = s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket.ClosedAt)
	require.True(t, ticket.ReviewSent)
}

func TestChannelDeleteIgnoresUntrackedChannels(t *testing.T) {
	tracker, _, flow := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	require.NoError(t, tracker.HandleChannelDelete(ctx, "chan-9", "cat-1"))
	require.NoError(t, tracker.HandleChannelDelete(ctx, "chan-9", "general"))
	require.Empty(t, flow.solicited)
}

func TestAssociateCreatesOrOverridesOwner(t *testing.T) {
	tracker, s, _ := newTestTracker(t, fakeResolver{})
	ctx := context.Background()

	require.NoError(t, tracker.Associate(ctx, "chan-1", "cat-1", "u1"))
	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.Equal(t, "u1", ticket.UserID)

	require.NoError(t, tracker.Associate(ctx, "chan-1", "cat-1", "u2"))
	ticket, err = s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Equal(t, "u2", ticket.UserID)
}
