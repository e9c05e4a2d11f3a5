// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the public handle chosen at registration.
	// It must be unique across all users and never changes.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Email is the address used as the identity claim in issued tokens.
	// It must be unique across all users and never changes.
	Email string `gorm:"uniqueIndex;size:100;not null"`

	// Password is the bcrypt digest of the user's password.
	// This never stores plaintext.
	Password string `gorm:"size:255;not null" json:"-"`

	// IsVerified reports whether the user confirmed their email address.
	// It starts false and flips to true exactly once.
	IsVerified bool `gorm:"not null;default:false"`

	// AvatarURL points at the user's uploaded avatar, if any.
	AvatarURL *string `gorm:"size:255"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
