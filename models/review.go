package models

import (
	"strings"
	"time"
)

// Review holds the feedback left for a closed ticket. One per ticket.
type Review struct {
	ID        int    `gorm:"primaryKey"`
	TicketID  int    `gorm:"not null;uniqueIndex"`
	Ticket    Ticket `gorm:"constraint:OnDelete:CASCADE"`
	UserID    string `gorm:"not null"`
	Rating    int    `gorm:"not null"`
	Comment   *string
	Anonymous bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// Stars renders the rating as a star string for embeds.
func (r *Review) Stars() string {
	return strings.Repeat("⭐", r.Rating)
}
