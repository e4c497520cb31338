package http

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware checks for a secret X-Admin-Token header.
func AdminAuthMiddleware() gin.HandlerFunc {
	// Read once when the middleware is initialized. If no token is set we
	// must fail closed: this is a critical misconfiguration.
	requiredToken := os.Getenv("X_ADMIN_TOKEN")
	if requiredToken == "" {
		panic("CRITICAL: X_ADMIN_TOKEN environment variable not set.")
	}

	return func(c *gin.Context) {
		suppliedToken := c.GetHeader("X-Admin-Token")

		if suppliedToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Admin token required"})
			return
		}
		if suppliedToken != requiredToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid admin token"})
			return
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevents MIME-type sniffing
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
