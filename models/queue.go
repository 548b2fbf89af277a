package models

// QueueEntry is one spot in the sales queue. Positions are not required to be
// unique or contiguous; display order is ascending position.
type QueueEntry struct {
	ID       int    `gorm:"primaryKey"`
	UserID   string `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Product  string `gorm:"not null"`
	Position int    `gorm:"not null"`
}

// QueueConfig records where the live queue embed lives. At most one row.
type QueueConfig struct {
	ID        int    `gorm:"primaryKey"`
	ChannelID string `gorm:"not null"`
	MessageID string `gorm:"not null"`
}
