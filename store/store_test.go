package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voidstudios/voidbot/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Payment{}, &models.QueueEntry{}, &models.QueueConfig{},
		&models.Vouch{}, &models.Ticket{}, &models.Review{}))
	return New(db)
}

func TestPaymentNotFoundReturnsNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	payment, err := s.GetPaymentByName(ctx, "paypal")
	require.NoError(t, err)
	require.Nil(t, payment)
}

func TestPaymentCreateGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	image := "https://example.com/pp.png"
	require.NoError(t, s.CreatePayment(ctx, &models.Payment{
		Name:  "paypal",
		URL:   "https://paypal.me/voidstudios",
		Image: &image,
	}))

	payment, err := s.GetPaymentByName(ctx, "paypal")
	require.NoError(t, err)
	require.NotNil(t, payment)
	require.Equal(t, "https://paypal.me/voidstudios", payment.URL)
	require.NotNil(t, payment.Image)

	require.NoError(t, s.DeletePaymentByName(ctx, "paypal"))
	payment, err = s.GetPaymentByName(ctx, "paypal")
	require.NoError(t, err)
	require.Nil(t, payment)
}

func TestQueueEntriesOrderedByPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateQueueEntry(ctx, &models.QueueEntry{UserID: "3", Name: "c", Product: "cheat", Position: 3}))
	require.NoError(t, s.CreateQueueEntry(ctx, &models.QueueEntry{UserID: "1", Name: "a", Product: "script", Position: 1}))
	require.NoError(t, s.CreateQueueEntry(ctx, &models.QueueEntry{UserID: "2", Name: "b", Product: "gfx", Position: 2}))

	entries, err := s.ListQueueEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{entries[0].UserID, entries[1].UserID, entries[2].UserID})

	count, err := s.CountQueueEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	require.NoError(t, s.DeleteQueueEntriesByUser(ctx, "2"))
	count, err = s.CountQueueEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.NoError(t, s.DeleteAllQueueEntries(ctx))
	count, err = s.CountQueueEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestQueueConfigSingleton(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg, err := s.GetQueueConfig(ctx)
	require.NoError(t, err)
	require.Nil(t, cfg)

	require.NoError(t, s.SaveQueueConfig(ctx, &models.QueueConfig{ChannelID: "c1", MessageID: "m1"}))

	cfg, err = s.GetQueueConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "m1", cfg.MessageID)

	cfg.MessageID = "m2"
	require.NoError(t, s.SaveQueueConfig(ctx, cfg))
	cfg, err = s.GetQueueConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, "m2", cfg.MessageID)
}

func TestVouchRatingBounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{name: "below range", rating: 0, wantErr: true},
		{name: "lowest", rating: 1, wantErr: false},
		{name: "highest", rating: 5, wantErr: false},
		{name: "above range", rating: 6, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateVouch(ctx, &models.Vouch{UserID: "u1", Body: "great", Rating: tt.rating})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	count, err := s.CountVouchesByUser(ctx, "u1")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestTicketLookupByChannel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ticket, err := s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.Nil(t, ticket)

	require.NoError(t, s.CreateTicket(ctx, &models.Ticket{ChannelID: "chan-1", UserID: "u1", CategoryID: "cat-1"}))

	ticket, err = s.GetTicketByChannel(ctx, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.False(t, ticket.ReviewSent)

	ticket.ReviewSent = true
	require.NoError(t, s.SaveTicket(ctx, ticket))

	byID, err := s.GetTicketByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.True(t, byID.ReviewSent)
}

func TestReviewStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	avg, err := s.AverageRating(ctx)
	require.NoError(t, err)
	require.Zero(t, avg)

	for i, rating := range []int{5, 5, 3} {
		ticket := &models.Ticket{ChannelID: string(rune('a' + i)), UserID: "u1", CategoryID: "cat-1"}
		require.NoError(t, s.CreateTicket(ctx, ticket))
		require.NoError(t, s.CreateReview(ctx, &models.Review{TicketID: ticket.ID, UserID: "u1", Rating: rating}))
	}

	total, err := s.CountReviews(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	avg, err = s.AverageRating(ctx)
	require.NoError(t, err)
	require.InDelta(t, 13.0/3.0, avg, 0.001)

	distribution, err := s.RatingDistribution(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, distribution[5])
	require.EqualValues(t, 1, distribution[3])
	require.EqualValues(t, 0, distribution[1])

	reviews, err := s.ListRecentReviews(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, "u1", reviews[0].Ticket.UserID)
}
