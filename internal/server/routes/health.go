package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}
