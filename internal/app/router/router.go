// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	"contacts_backend/internal/api"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
)

// NewRouter wires all handlers into a gin engine. The resolver backs the
// bearer-token middleware guarding the authenticated group.
func NewRouter(auth *authhandler.AuthHandler, contacts *contacthandler.ContactHandler,
	resolver authhandler.UserResolver) *gin.Engine {
	r := gin.Default()

	// No authentication required.
	r.GET("/healthz", api.Health)
	r.HEAD("/healthz", api.Health)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.GET("/auth/confirmed_email/:token", auth.ConfirmEmail)
	r.POST("/auth/request_email", auth.RequestEmail)

	// Everything below requires a valid bearer token.
	authed := r.Group("/")
	authed.Use(authhandler.AuthRequired(resolver))
	{
		authed.POST("/auth/avatar", auth.UpdateAvatar)

		authed.GET("/contacts", contacts.List)
		authed.POST("/contacts", contacts.Create)
		authed.GET("/contacts/:id", contacts.Get)
		authed.PUT("/contacts/:id", contacts.Update)
		authed.DELETE("/contacts/:id", contacts.Delete)
	}

	return r
}
