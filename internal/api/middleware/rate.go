package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/osa911/portfolio-api/internal/api/dto/common"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	// Create a new limiter with the given rate and burst
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))

		// Check if we can make a request
		if !limiter.Allow() {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(untilNextToken(limiter).Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Rate limit exceeded. Please try again later.",
				nil,
			))
			return
		}

		// Tokens() only inspects the bucket, Reserve() would consume a token
		remaining := limiter.Tokens()
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(remaining)))
		c.Header("X-RateLimit-Reset", time.Now().Add(untilNextToken(limiter)).Format(time.RFC1123))

		c.Next()
	}
}

// untilNextToken is how long until the bucket holds at least one token.
func untilNextToken(limiter *rate.Limiter) time.Duration {
	missing := 1 - limiter.Tokens()
	if missing <= 0 || limiter.Limit() <= 0 {
		return 0
	}
	return time.Duration(missing / float64(limiter.Limit()) * float64(time.Second))
}
