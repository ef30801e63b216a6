package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
)

// SetupSheetsRoutes serves the web-hook setup script
func SetupSheetsRoutes(router *gin.RouterGroup, setup *handlers.SheetsSetupHandler) {
	router.GET("/google-sheets-setup", setup.Get)
}
