package store

import (
	"context"
	"fmt"

	"github.com/voidstudios/voidbot/models"
)

func (s *Store) CreateVouch(ctx context.Context, v *models.Vouch) error {
	if v.Rating < 1 || v.Rating > 5 {
		return fmt.Errorf("vouch rating must be between 1 and 5, got %d", v.Rating)
	}
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vouch: %w", err)
	}
	return nil
}

func (s *Store) CountVouchesByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vouch{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vouches: %w", err)
	}
	return count, nil
}
