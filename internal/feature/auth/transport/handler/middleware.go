package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/api"
	"contacts_backend/internal/feature/auth/domain/entity"
)

// ContextUserKey is the gin context key holding the authenticated user.
const ContextUserKey = "currentUser"

// UserResolver resolves a bearer token to the user it names.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*entity.User, error)
}

// AuthRequired returns a gin middleware that validates the bearer token and
// restricts access to authenticated users. The resolved user is stored in the
// request context for handlers downstream.
func AuthRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		user, err := resolver.ResolveUser(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired,
// or nil when the request did not pass through it.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
