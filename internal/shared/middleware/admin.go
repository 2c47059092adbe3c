package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/response"
)

// AdminMiddleware checks if user has admin role.
// Must run after AuthMiddleware, which sets "role" on the context.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
