package middleware

import (
	"net/http"
	"strings"

	"kgtransfer/config"
	"kgtransfer/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired.
const (
	ContextAdminID = "admin_id"
	ContextEmail   = "email"
	ContextRole    = "role"
)

// AuthRequired validates the bearer JWT and sets admin ID, email and role in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// GetAdminID returns the authenticated admin ID (must be used after AuthRequired).
func GetAdminID(c *gin.Context) uint {
	v, ok := c.Get(ContextAdminID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
