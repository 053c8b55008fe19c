package models

import (
	"time"
)

const (
	// MinRating and MaxRating bound review ratings.
	MinRating = 1
	MaxRating = 5
)

// Review is a guest's rating and comment on a property.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Property   Property  `gorm:"foreignKey:PropertyID" json:"property"`
	GuestID    uint      `gorm:"not null;index" json:"guest_id"`
	Guest      User      `gorm:"foreignKey:GuestID" json:"guest"`
	Rating     int       `gorm:"not null;default:1" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
