package models

import (
	"time"

	"gorm.io/gorm"
)

// City is reference data managed by admins. Properties point at a city.
type City struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"unique;not null" json:"name"`
	Image     string         `json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Properties []Property `gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE" json:"properties,omitempty"`
}
