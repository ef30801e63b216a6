package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/constants"
	"github.com/osa911/portfolio-api/internal/api/dto/common"
	"github.com/osa911/portfolio-api/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-api/internal/validation"
)

// ValidationMiddleware decodes request bodies into DTOs. Field rules are
// enforced by the service so every entry point shares them.
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{}
}

// DecodeContactRequest stores a *contact.ContactRequest under ContextKeyContactRequest
func (m *ValidationMiddleware) DecodeContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if !decodeJSON(c, &req) {
			return
		}
		c.Set(constants.ContextKeyContactRequest, &req)
		c.Next()
	}
}

// DecodeServiceInquiryRequest stores a *contact.ServiceInquiryRequest under ContextKeyServiceInquiryRequest
func (m *ValidationMiddleware) DecodeServiceInquiryRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ServiceInquiryRequest
		if !decodeJSON(c, &req) {
			return
		}
		c.Set(constants.ContextKeyServiceInquiryRequest, &req)
		c.Next()
	}
}

// decodeJSON aborts with 400 and returns false when the body is not a JSON
// object matching dst.
func decodeJSON(c *gin.Context, dst interface{}) bool {
	body, err := rawBody(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeBadRequest, "Error reading request body", nil))
		return false
	}

	if len(bytes.TrimSpace(body)) == 0 {
		abortDecode(c, "body", "required", "request body is required")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			abortDecode(c, typeErr.Field, "type", fmt.Sprintf("must be a %s", typeErr.Type.String()))
			return false
		}
		abortDecode(c, "body", "json", "request body must be a JSON object")
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		abortDecode(c, "body", "json", "request body must contain a single JSON object")
		return false
	}
	return true
}

func abortDecode(c *gin.Context, field, tag, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewValidationErrorResponse([]validation.FieldViolation{{
		Field:   field,
		Tag:     tag,
		Message: message,
	}}))
}
