package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"twinclash-api/config"

	"github.com/gin-gonic/gin"
)

// AdminKeyMiddleware guards admin-only endpoints behind the x-admin-key
// header. With no key configured the endpoints are disabled outright.
func AdminKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AdminKey
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin endpoints are not configured"})
			return
		}

		provided := c.GetHeader("x-admin-key")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			log.Printf("[admin] Unauthorized access attempt from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
