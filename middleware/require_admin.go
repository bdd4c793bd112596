package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows only the listed roles past this point. It runs
// AuthMiddleware first so it can be used standalone on a route group.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		AuthMiddleware()(c)
		if c.IsAborted() {
			return
		}

		role := c.GetString("role")
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to this resource"})
		c.Abort()
	}
}
