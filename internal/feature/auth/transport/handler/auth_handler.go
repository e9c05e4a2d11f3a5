// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/api"
	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/transport/http/dto"
	"contacts_backend/internal/feature/auth/usecase"
)

// AccountUsecase defines the account operations consumed by the HTTP layer.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type AccountUsecase interface {
	// Register creates a new unverified user and schedules the confirmation email.
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	// Login authenticates a user and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	// ConfirmEmail validates a confirmation token and marks the user verified.
	ConfirmEmail(ctx context.Context, token string) (alreadyVerified bool, err error)
	// ResendConfirmation schedules a fresh confirmation email.
	ResendConfirmation(ctx context.Context, email string) (alreadyVerified bool, err error)
	// UpdateAvatar uploads an avatar image and persists its URL.
	UpdateAvatar(ctx context.Context, email, filename string, content io.Reader, size int64, contentType string) (*entity.User, error)
	// ResolveUser resolves a bearer token to the user it names.
	ResolveUser(ctx context.Context, token string) (*entity.User, error)
}

// AuthHandler handles the HTTP requests for account operations.
type AuthHandler struct {
	accounts AccountUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(accounts AccountUsecase) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /auth/register.
// - 400 on a malformed body
// - 409 on an email or username conflict, with a distinguishing message
// - 201 with the created user (password digest excluded) on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists), errors.Is(err, usecase.ErrUsernameAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("register failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.NewUserResponse(user))
}

// Login handles POST /auth/login.
// Invalid credentials and an unverified email both map to 401, with
// distinct messages matching the original product behavior.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		case errors.Is(err, usecase.ErrEmailNotVerified):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "email not verified"})
		default:
			slog.Error("login failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// ConfirmEmail handles GET /auth/confirmed_email/:token.
// Tampered and expired tokens are indistinguishable in the response.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	already, err := h.accounts.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		slog.Warn("email confirmation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email verification failed"})
		return
	}

	if already {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "email confirmed"})
}

// RequestEmail handles POST /auth/request_email.
// The response is success-shaped for unknown addresses as well, so it never
// reveals whether an email is registered.
func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	already, err := h.accounts.ResendConfirmation(c.Request.Context(), req.Email)
	if err != nil {
		slog.Error("resend confirmation failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	if already {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "check your email for confirmation"})
}

// UpdateAvatar handles POST /auth/avatar. It expects a multipart "file" part
// and requires a valid bearer token (enforced by AuthRequired).
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unreadable file"})
		return
	}
	defer file.Close()

	updated, err := h.accounts.UpdateAvatar(
		c.Request.Context(),
		user.Email,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("avatar update failed", "error", err, "email", user.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("avatar updated", "email", user.Email)
	c.JSON(http.StatusOK, api.NewUserResponse(updated))
}
