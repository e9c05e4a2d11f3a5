// Package api defines shared response types for the HTTP transport layer.
package api

import (
	"time"

	authentity "contacts_backend/internal/feature/auth/domain/entity"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for status-message responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the JSON body returned after a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public representation of a user.
// The password digest is never serialized.
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserResponse converts a user entity into its public representation.
func NewUserResponse(u *authentity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}
