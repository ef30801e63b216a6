package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/dto/common"
	"github.com/osa911/portfolio-api/internal/service"
	"github.com/osa911/portfolio-api/internal/utils"
)

// handleSubmissionError maps a submission failure to 400 or 500.
func handleSubmissionError(c *gin.Context, audit *service.AuditService, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		audit.LogEvent(c.Request.Context(), service.AuditEventSubmissionDenied, "", utils.GetRealIP(c), map[string]interface{}{
			"path":   c.Request.URL.Path,
			"fields": len(verr.Violations),
		})
		utils.HandleValidationError(c, verr.Violations)
		return
	}

	utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to save submission")
}

// fromContext fetches a DTO stored by the validation middleware.
func fromContext[T any](c *gin.Context, key string) (*T, bool) {
	v, exists := c.Get(key)
	if !exists {
		utils.HandleAPIError(c, errors.New(key+" missing"), http.StatusInternalServerError, common.ErrCodeInternalServer, "Request data not found in context")
		return nil, false
	}
	req, ok := v.(*T)
	if !ok {
		utils.HandleAPIError(c, errors.New(key+" has wrong type"), http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid request data format")
		return nil, false
	}
	return req, true
}
