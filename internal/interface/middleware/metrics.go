package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/exercise-tracker/internal/observability"
)

// Metrics observes request latency per matched route. Install it before
// ErrorHandler so the recorded status is the one actually written.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
