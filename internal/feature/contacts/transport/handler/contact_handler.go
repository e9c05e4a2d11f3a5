// Package handler provides the HTTP handlers for the contacts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/api"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/transport/http/dto"
	"contacts_backend/internal/feature/contacts/usecase"
)

// ContactUsecase defines the contact operations consumed by the HTTP layer.
type ContactUsecase interface {
	List(ctx context.Context, userID uint, q usecase.Query) ([]entity.Contact, error)
	Get(ctx context.Context, userID, id uint) (*entity.Contact, error)
	Create(ctx context.Context, userID uint, contact *entity.Contact) (*entity.Contact, error)
	Update(ctx context.Context, userID, id uint, updated *entity.Contact) (*entity.Contact, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ContactHandler handles the HTTP requests for the contact book.
type ContactHandler struct {
	contacts ContactUsecase
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(contacts ContactUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List handles GET /contacts. Supports ?search= substring matching and
// ?birthdays_within= for upcoming-birthday filtering.
func (h *ContactHandler) List(c *gin.Context) {
	user := authhandler.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	q := usecase.Query{Search: c.Query("search")}
	if raw := c.Query("birthdays_within"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid birthdays_within"})
			return
		}
		q.BirthdaysWithinDays = days
	}

	contacts, err := h.contacts.List(c.Request.Context(), user.ID, q)
	if err != nil {
		slog.Error("contact list failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactListResponse(contacts))
}

// Get handles GET /contacts/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	user := authhandler.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "contact not found"})
			return
		}
		slog.Error("contact fetch failed", "error", err, "user_id", user.ID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(c *gin.Context) {
	user := authhandler.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("contact validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	created, err := h.contacts.Create(c.Request.Context(), user.ID, req.ToEntity())
	if err != nil {
		slog.Error("contact create failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewContactResponse(created))
}

// Update handles PUT /contacts/:id.
func (h *ContactHandler) Update(c *gin.Context) {
	user := authhandler.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	updated, err := h.contacts.Update(c.Request.Context(), user.ID, id, req.ToEntity())
	if err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "contact not found"})
			return
		}
		slog.Error("contact update failed", "error", err, "user_id", user.ID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewContactResponse(updated))
}

// Delete handles DELETE /contacts/:id.
func (h *ContactHandler) Delete(c *gin.Context) {
	user := authhandler.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "contact not found"})
			return
		}
		slog.Error("contact delete failed", "error", err, "user_id", user.ID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// contactID parses the :id path parameter, writing a 400 response on failure.
func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid contact id"})
		return 0, false
	}
	return uint(id), true
}
