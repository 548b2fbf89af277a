package migrations

import (
	"gorm.io/gorm"

	"github.com/voidstudios/voidbot/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Payment{}, &models.QueueEntry{}, &models.QueueConfig{}, &models.Vouch{}, &models.Ticket{}, &models.Review{})
}
