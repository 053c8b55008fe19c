package models

import (
	"time"
)

// Favorite is a guest's single wishlist. One per user.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GuestID   uint      `gorm:"uniqueIndex;not null" json:"guest_id"`
	Guest     User      `gorm:"foreignKey:GuestID" json:"guest"`
	CreatedAt time.Time `json:"created_at"`

	Items []FavoriteItem `gorm:"foreignKey:FavoriteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// FavoriteItem links a favorite list to a property. The (favorite, property)
// pair is unique so a property cannot be saved twice.
type FavoriteItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FavoriteID uint      `gorm:"not null;uniqueIndex:idx_favorite_property" json:"favorite_id"`
	Favorite   Favorite  `gorm:"foreignKey:FavoriteID" json:"favorite"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_favorite_property;index" json:"property_id"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property"`
	CreatedAt  time.Time `json:"created_at"`
}
