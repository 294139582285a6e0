package middleware

import (
	"github.com/gin-gonic/gin"

	"ClinicCare360/monitoring"
)

// ErrorReporter forwards errors attached to the gin context to Sentry after
// the request finishes.
func ErrorReporter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			monitoring.CaptureError(ginErr.Err, map[string]interface{}{
				"endpoint": c.Request.URL.Path,
				"method":   c.Request.Method,
				"status":   c.Writer.Status(),
			})
		}
	}
}
