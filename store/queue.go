package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/voidstudios/voidbot/models"
)

func (s *Store) CreateQueueEntry(ctx context.Context, e *models.QueueEntry) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create queue entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteQueueEntriesByUser(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.QueueEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete queue entries: %w", err)
	}
	return nil
}

func (s *Store) DeleteAllQueueEntries(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.QueueEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// ListQueueEntries returns all entries in display order, ascending position.
func (s *Store) ListQueueEntries(ctx context.Context) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	return entries, nil
}

func (s *Store) CountQueueEntries(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.QueueEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return count, nil
}

func (s *Store) GetQueueConfig(ctx context.Context) (*models.QueueConfig, error) {
	var cfg models.QueueConfig
	if err := s.db.WithContext(ctx).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get queue config: %w", err)
	}
	return &cfg, nil
}

func (s *Store) SaveQueueConfig(ctx context.Context, cfg *models.QueueConfig) error {
	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("failed to save queue config: %w", err)
	}
	return nil
}
