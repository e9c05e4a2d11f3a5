// Package dto defines data transfer objects for the contacts feature's HTTP transport layer.
package dto

import (
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// ContactReq represents the request body for creating or updating a contact.
type ContactReq struct {
	Name     string    `json:"name" binding:"required,max=50"`
	Surname  string    `json:"surname" binding:"required,max=50"`
	Email    string    `json:"email" binding:"required,email"`
	Phone    string    `json:"phone" binding:"required,max=20"`
	Birthday time.Time `json:"birthday" binding:"required"`
	Info     string    `json:"info" binding:"max=500"`
}

// ToEntity converts the request into a contact entity.
func (r ContactReq) ToEntity() *entity.Contact {
	return &entity.Contact{
		Name:     r.Name,
		Surname:  r.Surname,
		Email:    r.Email,
		Phone:    r.Phone,
		Birthday: r.Birthday,
		Info:     r.Info,
	}
}

// ContactResponse is the public representation of a contact.
type ContactResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Birthday  time.Time `json:"birthday"`
	Info      string    `json:"info,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactResponse converts a contact entity into its public representation.
func NewContactResponse(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Surname:   c.Surname,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday,
		Info:      c.Info,
		CreatedAt: c.CreatedAt,
	}
}

// NewContactListResponse converts a slice of contact entities.
func NewContactListResponse(contacts []entity.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}
