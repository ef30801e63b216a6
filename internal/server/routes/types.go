package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
	"github.com/osa911/portfolio-api/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health         *handlers.HealthHandler
	Contact        *handlers.ContactHandler
	ServiceInquiry *handlers.ServiceInquiryHandler
	SheetsSetup    *handlers.SheetsSetupHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	// SubmitLimit guards the public submission endpoints
	SubmitLimit gin.HandlerFunc
}
