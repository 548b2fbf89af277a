package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/voidstudios/voidbot/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *Store) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// AverageRating returns 0 when no reviews exist.
func (s *Store) AverageRating(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).Model(&models.Review{}).Select("AVG(rating)").Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg.Float64, nil
}

// RatingDistribution returns the number of reviews per star rating 1-5.
func (s *Store) RatingDistribution(ctx context.Context) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group ratings: %w", err)
	}
	distribution := make(map[int]int64, 5)
	for i := 1; i <= 5; i++ {
		distribution[i] = 0
	}
	for _, row := range rows {
		distribution[row.Rating] = row.Count
	}
	return distribution, nil
}

// ListRecentReviews returns up to limit reviews, newest first, with their
// tickets preloaded.
func (s *Store) ListRecentReviews(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Ticket").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
