package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ClinicCare360/monitoring"
)

func PrometheusMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		monitoring.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			http.StatusText(status),
		).Inc()

		monitoring.RequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(duration)
	}
}
