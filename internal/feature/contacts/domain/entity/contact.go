// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact is a single address-book entry owned by a user.
type Contact struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"size:50;not null"`
	Surname string `gorm:"size:50;not null"`
	Email   string `gorm:"size:100;not null"`
	Phone   string `gorm:"size:20;not null"`

	// Birthday carries only the date part; the time of day is ignored.
	Birthday time.Time `gorm:"not null"`

	// Info holds free-form notes about the contact.
	Info string `gorm:"size:500"`

	// UserID is the owning user. Every query is scoped to it.
	UserID uint `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
