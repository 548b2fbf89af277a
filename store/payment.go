package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/voidstudios/voidbot/models"
)

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (s *Store) GetPaymentByName(ctx context.Context, name string) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by name: %w", err)
	}
	return &p, nil
}

func (s *Store) DeletePaymentByName(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Payment{}).Error; err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
