package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every incoming request line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("[%s] %s", c.Request.Method, c.Request.URL.Path)
		c.Next()
	}
}
