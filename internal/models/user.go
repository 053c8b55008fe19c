// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies what a user is allowed to do. It is fixed at registration.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account in StayHub.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone"`
	Role      Role           `gorm:"type:varchar(16);not null;default:'guest'" json:"role"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Properties []Property `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"properties,omitempty"`
	Bookings   []Booking  `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Favorite   *Favorite  `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"favorite,omitempty"`
}
