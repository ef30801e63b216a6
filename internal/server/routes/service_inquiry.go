package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/handlers"
)

// SetupServiceInquiryRoutes configures service inquiry routes
func SetupServiceInquiryRoutes(router *gin.RouterGroup, inquiry *handlers.ServiceInquiryHandler, m *Middleware) {
	router.POST("/service-inquiry",
		m.SubmitLimit,
		m.Validation.DecodeServiceInquiryRequest(),
		inquiry.Submit,
	)
	router.GET("/service-inquiries", inquiry.List)
}
