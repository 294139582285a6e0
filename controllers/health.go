package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc checks the backing database; main wires in the Mongo client ping.
type PingFunc func(ctx context.Context) error

func Health(router *gin.Engine, ping PingFunc) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is working")
	})
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"details": gin.H{"mongo": "unavailable"},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"details": gin.H{"mongo": "available"},
		})
	})
}
