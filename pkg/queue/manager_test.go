package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voidstudios/voidbot/migrations"
	"github.com/voidstudios/voidbot/store"
)

type fakeMessenger struct {
	mu    sync.Mutex
	sends []*discordgo.MessageEmbed
	edits []*discordgo.MessageEmbed
}

func (f *fakeMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, embed)
	return fmt.Sprintf("msg-%d", len(f.sends)), nil
}

func (f *fakeMessenger) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, embed)
	return nil
}

func (f *fakeMessenger) lastEmbed() *discordgo.MessageEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) > 0 {
		return f.edits[len(f.edits)-1]
	}
	if len(f.sends) > 0 {
		return f.sends[len(f.sends)-1]
	}
	return nil
}

func newTestManager(t *testing.T) (*Manager, *store.Store, *fakeMessenger) {
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
	messenger := &fakeMessenger{}
	manager := NewManager(s, messenger, "queue-channel")
	manager.now = func() time.Time { return time.Unix(1700000000, 0) }
	return manager, s, messenger
}

func TestAddAssignsCountPlusOne(t *testing.T) {
	manager, s, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", nil))
	require.NoError(t, manager.Add(ctx, "u3", "carol", "cheat", nil))

	entries, err := s.ListQueueEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, 2, entries[1].Position)
	require.Equal(t, 3, entries[2].Position)
}

// Removing an entry frees its integer; the next default add reuses it. This
// matches how positions have always been assigned and is asserted on, not
// fixed.
func TestDefaultPositionReusedAfterRemove(t *testing.T) {
	manager, s, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", nil))
	require.NoError(t, manager.Remove(ctx, "u1"))
	require.NoError(t, manager.Add(ctx, "u3", "carol", "cheat", nil))

	entries, err := s.ListQueueEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// u2 kept position 2; u3 got count+1 = 2 as well.
	require.Equal(t, 2, entries[0].Position)
	require.Equal(t, 2, entries[1].Position)
}

func TestExplicitPositionControlsDisplayOrder(t *testing.T) {
	manager, _, messenger := newTestManager(t)
	ctx := context.Background()

	pos := 0
	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", &pos))

	embed := messenger.lastEmbed()
	require.NotNil(t, embed)
	lines := strings.Split(embed.Description, "\n")
	require.Contains(t, lines[0], "<@u2>")
	require.Contains(t, lines[1], "<@u1>")
}

func TestRefreshCreatesThenEditsDisplayMessage(t *testing.T) {
	manager, s, messenger := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.Len(t, messenger.sends, 1)
	require.Empty(t, messenger.edits)

	cfg, err := s.GetQueueConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "queue-channel", cfg.ChannelID)
	require.Equal(t, "msg-1", cfg.MessageID)

	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", nil))
	require.Len(t, messenger.sends, 1)
	require.Len(t, messenger.edits, 1)
}

func TestRenderDistinguishesFirstEntry(t *testing.T) {
	manager, _, messenger := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", nil))

	embed := messenger.lastEmbed()
	require.NotNil(t, embed)
	require.Equal(t, "Void Studios Queue", embed.Title)
	lines := strings.Split(embed.Description, "\n")
	require.Equal(t, fmt.Sprintf("1. %s <@u1> - script", firstEmoji), lines[0])
	require.Equal(t, fmt.Sprintf("2. %s <@u2> - gfx", waitingEmoji), lines[1])
	require.Contains(t, embed.Description, "Last updated: <t:1700000000:R>")
}

func TestClearEmptiesQueue(t *testing.T) {
	manager, s, messenger := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Add(ctx, "u2", "bob", "gfx", nil))
	require.NoError(t, manager.Clear(ctx))

	count, err := s.CountQueueEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	embed := messenger.lastEmbed()
	require.NotNil(t, embed)
	require.True(t, strings.HasPrefix(embed.Description, "\n\nLast updated:"))
}

func TestRemoveUnknownUserIsNoop(t *testing.T) {
	manager, s, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Add(ctx, "u1", "alice", "script", nil))
	require.NoError(t, manager.Remove(ctx, "nobody"))

	count, err := s.CountQueueEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

// Two default-position adds may race and both observe the same count. The
// store must stay consistent and nothing may crash; position uniqueness is
// explicitly not asserted.
func TestConcurrentDefaultAddsStayConsistent(t *testing.T) {
	manager, s, _ := newTestManager(t)
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			errs <- manager.Add(ctx, id, id, "script", nil)
		}(userID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := s.ListQueueEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.GreaterOrEqual(t, entry.Position, 1)
		require.LessOrEqual(t, entry.Position, 2)
	}
}
