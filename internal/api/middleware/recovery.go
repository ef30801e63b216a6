package middleware

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/constants"
	"github.com/osa911/portfolio-api/internal/api/dto/common"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/utils"
)

// PanicReporter forwards recovered panics to error tracking.
type PanicReporter interface {
	RecoverPanic(ctx context.Context, v interface{})
}

// Recovery turns a panic into a 500 response. reporter may be nil.
func Recovery(logger *logging.Logger, reporter PanicReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Log the stack trace
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				if reporter != nil {
					reporter.RecoverPanic(c.Request.Context(), err)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(
					common.ErrCodeInternalServer, "Internal server error", nil))
			}
		}()

		c.Next()
	}
}
