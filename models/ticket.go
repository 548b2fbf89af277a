package models

import "time"

// Ticket tracks one support channel from creation to closure. Rows are never
// deleted; ReviewSent only ever goes from false to true.
type Ticket struct {
	ID         int    `gorm:"primaryKey"`
	ChannelID  string `gorm:"not null;uniqueIndex"`
	UserID     string `gorm:"not null"`
	CategoryID string `gorm:"not null"`
	CreatedAt  time.Time
	ClosedAt   *time.Time
	ReviewSent bool `gorm:"not null;default:false"`
}
