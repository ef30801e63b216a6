package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	submit := []gin.HandlerFunc{
		m.SubmitLimit,
		m.Validation.DecodeContactRequest(),
		contact.Submit,
	}

	router.POST("/contacts", submit...)
	// Older frontends post to the singular path
	router.POST("/contact", submit...)

	router.GET("/contacts", contact.List)
}
