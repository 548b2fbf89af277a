package models

type Payment struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"not null;index"`
	URL         string `gorm:"not null"`
	Image       *string
	Description *string
}
