package middleware

import (
	"net/http"
	"strconv"

	"cartalk/internal/redis"
	"cartalk/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthRateLimitMiddleware limits register/login attempts per client IP.
func AuthRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return rateLimit(func(c *gin.Context) (*redis.RateLimitResult, error) {
		return limiter.AllowAuth(c.Request.Context(), c.ClientIP())
	})
}

// AskRateLimitMiddleware limits model questions per client IP. The model call
// costs money; this is the only throttle in front of it.
func AskRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return rateLimit(func(c *gin.Context) (*redis.RateLimitResult, error) {
		return limiter.AllowAsk(c.Request.Context(), c.ClientIP())
	})
}

func rateLimit(allow func(ctx *gin.Context) (*redis.RateLimitResult, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := allow(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error"))
			c.Abort()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
