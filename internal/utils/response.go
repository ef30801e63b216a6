package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/dto/common"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleValidationError sends a 400 listing every field violation
func HandleValidationError(c *gin.Context, violations interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewValidationErrorResponse(violations))
}
