package models

import "time"

type Vouch struct {
	ID        int    `gorm:"primaryKey"`
	UserID    string `gorm:"not null;index"`
	Body      string `gorm:"not null"`
	Rating    int    `gorm:"not null"`
	CreatedAt time.Time
}
