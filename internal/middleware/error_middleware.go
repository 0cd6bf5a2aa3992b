package middleware

import (
	"cartalk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors attached to the context by handlers. The response
// body has already been written at that point; this only records the fault.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if l != nil {
			l.Errorf("request error: %s", c.Errors.Last().Err.Error())
		}
	}
}
