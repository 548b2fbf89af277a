package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/voidstudios/voidbot/models"
)

func (s *Store) CreateTicket(ctx context.Context, t *models.Ticket) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (s *Store) GetTicketByChannel(ctx context.Context, channelID string) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.db.WithContext(ctx).Where("channel_id = ?", channelID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by channel: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTicketByID(ctx context.Context, id int) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by id: %w", err)
	}
	return &t, nil
}

func (s *Store) SaveTicket(ctx context.Context, t *models.Ticket) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return nil
}
