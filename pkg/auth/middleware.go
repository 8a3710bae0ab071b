package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/fastbite/pkg/models"
)

const (
	ctxUserIDKey = "auth.user_id"
	ctxRoleKey   = "auth.role"
)

// Middleware authenticates requests with a Bearer token and stores the
// caller's identity on the gin context.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or malformed authorization header"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's user ID, or zero when the
// request is unauthenticated.
func UserID(c *gin.Context) uint {
	id, _ := c.Get(ctxUserIDKey)
	userID, _ := id.(uint)
	return userID
}

// Role returns the authenticated caller's role.
func Role(c *gin.Context) string {
	r, _ := c.Get(ctxRoleKey)
	role, _ := r.(string)
	return role
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return Role(c) == models.RoleAdmin
}
