package models

import (
	"time"

	"gorm.io/gorm"
)

// PropertyType enumerates the kinds of listings hosts can offer.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStudio    PropertyType = "studio"
)

// Valid reports whether the property type is a known value.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStudio:
		return true
	}
	return false
}

// PropertyRules enumerates house rules a listing can declare.
type PropertyRules string

const (
	RulesNoSmoking   PropertyRules = "no_smoking"
	RulesPetsAllowed PropertyRules = "pets_allowed"
)

// Valid reports whether the rules value is a known value.
func (r PropertyRules) Valid() bool {
	return r == RulesNoSmoking || r == RulesPetsAllowed
}

// Property is a rentable listing owned by a host.
type Property struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	PricePerNight int            `gorm:"not null" json:"price_per_night"`
	CityID        uint           `gorm:"not null;index" json:"city_id"`
	City          City           `gorm:"foreignKey:CityID" json:"city"`
	Address       string         `gorm:"not null" json:"address"`
	Type          PropertyType   `gorm:"type:varchar(16);not null;default:'apartment'" json:"type"`
	Rules         PropertyRules  `gorm:"type:varchar(16)" json:"rules"`
	MaxGuests     int            `gorm:"not null" json:"max_guests"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	Owner         User           `gorm:"foreignKey:OwnerID" json:"owner"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Images   []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Bookings []Booking       `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Reviews  []Review        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// NightlyChargeEstimate returns the minimum charge quoted to guests,
// a flat two-night multiple of the nightly price.
func (p *Property) NightlyChargeEstimate() int {
	return p.PricePerNight * 2
}

// PropertyImage is a photo attached to a property. Removed with its property.
type PropertyImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Image      string    `gorm:"not null" json:"image"`
	CreatedAt  time.Time `json:"created_at"`
}
