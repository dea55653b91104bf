package middleware

import (
	"net/http"
	"strings"

	"welcomecrm/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards the agent-facing routes. Public viewer routes
// never pass through here; clients reach those with the proposal's
// public token alone.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		agentID, email, role, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("agentID", agentID)
		c.Set("agentEmail", email)
		c.Set("agentRole", role)
		c.Next()
	}
}
