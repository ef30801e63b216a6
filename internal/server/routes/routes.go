package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/middleware"
	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	// Health check (no rate limiting beyond the global one)
	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")

	// Contact form routes
	SetupContactRoutes(api, h.Contact, m)

	// Service inquiry routes
	SetupServiceInquiryRoutes(api, h.ServiceInquiry, m)

	// Google Sheets setup helper
	SetupSheetsRoutes(api, h.SheetsSetup)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger, reporter middleware.PanicReporter) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger, reporter))
	router.Use(middleware.RequestLogger(logger, cfg.LogRequests))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    !cfg.IsProduction(),
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PreserveRequestBody(middleware.DefaultMaxBodySize))
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}))
}
