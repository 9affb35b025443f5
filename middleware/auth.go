package middleware

import (
	"strings"

	"github.com/Nikk8744/F-T-T-sub000/response"
	"github.com/Nikk8744/F-T-T-sub000/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware authenticates the bearer token (or ?token= for websockets)
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, userRole, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, userRole)
		c.Next()
	}
}

// RoleMiddleware checks the role set by AuthMiddleware. Use it after AuthMiddleware.
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, ok := userRole.(int)
		if !ok || !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
