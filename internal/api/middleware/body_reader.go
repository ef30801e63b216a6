package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/constants"
	"github.com/osa911/portfolio-api/internal/api/dto/common"
)

// DefaultMaxBodySize caps request bodies at 1 MB
const DefaultMaxBodySize int64 = 1 << 20

// BodyValidationOption defines options for request body validation
type BodyValidationOption int

const (
	// RequireBody means the request must have a non-empty body
	RequireBody BodyValidationOption = iota
	// AllowEmptyBody means the request can have an empty body
	AllowEmptyBody
)

// SetBodyValidation sets the body validation option for a route
func SetBodyValidation(option BodyValidationOption) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyBodyValidation, option)
		c.Next()
	}
}

// PreserveRequestBody middleware reads the request body once and restores it
// This allows validators and controllers to both read the body
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		// Only process methods that carry a body
		if c.Request.Body == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch) {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(
					common.ErrCodePayloadTooLarge, "Request body too large", nil))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest, "Error reading request body", nil))
			return
		}

		// Restore the body for subsequent middleware
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		// Store body in context for potential use later
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

// rawBody returns the preserved body, reading the request when
// PreserveRequestBody did not run.
func rawBody(c *gin.Context) ([]byte, error) {
	if v, ok := c.Get(constants.ContextKeyRawBody); ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	}
	if c.Request.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(b))
	return b, nil
}
