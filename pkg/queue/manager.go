package queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/voidstudios/voidbot/models"
	"github.com/voidstudios/voidbot/store"
)

const (
	embedTitle   = "Void Studios Queue"
	colorBlurple = 0x5865F2

	firstEmoji   = "<a:Green:1286111140794859603>"
	waitingEmoji = "<a:Yellow:1286111791851634799>"
)

// Messenger is the slice of the Discord session the queue embed needs.
type Messenger interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
}

// Manager keeps the sales queue and its single display message in sync. Every
// mutation republishes the embed. Concurrent mutations can interleave the
// read-modify-write of the message; the last writer wins.
type Manager struct {
	store     *store.Store
	messenger Messenger
	channelID string
	now       func() time.Time
}

func NewManager(s *store.Store, m Messenger, channelID string) *Manager {
	return &Manager{store: s, messenger: m, channelID: channelID, now: time.Now}
}

// NextPosition returns the default position for a new entry: entry count + 1.
// Positions vacated by removals get reused; this mirrors how positions have
// always been assigned here and is relied on by the display.
func (m *Manager) NextPosition(ctx context.Context) (int, error) {
	count, err := m.store.CountQueueEntries(ctx)
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// Add inserts a queue entry and refreshes the display. A nil position gets the
// default from NextPosition.
func (m *Manager) Add(ctx context.Context, userID, name, product string, position *int) error {
	pos := 0
	if position != nil {
		pos = *position
	} else {
		next, err := m.NextPosition(ctx)
		if err != nil {
			return err
		}
		pos = next
	}
	entry := &models.QueueEntry{
		UserID:   userID,
		Name:     name,
		Product:  product,
		Position: pos,
	}
	if err := m.store.CreateQueueEntry(ctx, entry); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Remove deletes every entry for the user and refreshes the display. Removing
// a user who is not queued is a no-op, not an error.
func (m *Manager) Remove(ctx context.Context, userID string) error {
	if err := m.store.DeleteQueueEntriesByUser(ctx, userID); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Clear deletes the whole queue and refreshes the display.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.DeleteAllQueueEntries(ctx); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Refresh renders the queue and edits the stored display message, creating and
// recording it on first use.
func (m *Manager) Refresh(ctx context.Context) error {
	entries, err := m.store.ListQueueEntries(ctx)
	if err != nil {
		return err
	}
	embed := &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: m.renderDescription(entries),
		Color:       colorBlurple,
	}

	cfg, err := m.store.GetQueueConfig(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		messageID, err := m.messenger.SendEmbed(m.channelID, embed)
		if err != nil {
			return fmt.Errorf("failed to publish queue embed: %w", err)
		}
		return m.store.SaveQueueConfig(ctx, &models.QueueConfig{
			ChannelID: m.channelID,
			MessageID: messageID,
		})
	}
	if err := m.messenger.EditEmbed(cfg.ChannelID, cfg.MessageID, embed); err != nil {
		return fmt.Errorf("failed to edit queue embed: %w", err)
	}
	return nil
}

func (m *Manager) renderDescription(entries []models.QueueEntry) string {
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		emoji := waitingEmoji
		if i == 0 {
			emoji = firstEmoji
		}
		lines = append(lines, fmt.Sprintf("%d. %s <@%s> - %s", i+1, emoji, entry.UserID, entry.Product))
	}
	return fmt.Sprintf("%s\n\nLast updated: <t:%d:R>", strings.Join(lines, "\n"), m.now().Unix())
}
