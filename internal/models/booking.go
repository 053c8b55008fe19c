package models

import (
	"time"
)

// BookingStatus tracks the lifecycle of a booking request.
//
// The expected flow is pending -> approved|rejected -> cancelled, but
// transitions are not enforced: any status may be written over any other.
// Product has not specified whether e.g. approved -> pending is legal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is a known value.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingCancelled:
		return true
	}
	return false
}

// Booking is a guest's stay request for a property.
type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	PropertyID uint          `gorm:"not null;index" json:"property_id"`
	Property   Property      `gorm:"foreignKey:PropertyID" json:"property"`
	GuestID    uint          `gorm:"not null;index" json:"guest_id"`
	Guest      User          `gorm:"foreignKey:GuestID" json:"guest"`
	CheckIn    time.Time     `gorm:"not null" json:"check_in"`
	CheckOut   time.Time     `gorm:"not null" json:"check_out"`
	Status     BookingStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
