package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/constants"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/utils"
)

// RequestLogger is a middleware that logs request information
// It only logs when request logging is enabled (LOG_REQUESTS=true)
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	logger.Info("RequestLogger middleware initialized (enabled=%v)", enabled)

	// If logging is disabled, return a no-op middleware
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path

		// Process request
		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
