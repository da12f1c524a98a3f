package middleware

import (
	"net/http"
	"strings"

	"caregrid/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where the authenticated user's ID lands in the gin
// context.
const ContextUserIDKey = "userID"

// JWTAuthMiddleware validates the bearer token and stores the caller's user
// ID in the request context. Identity management itself (issuing accounts,
// sessions, devices) lives in a separate service; this layer only proves the
// token.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.SubjectFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserID pulls the authenticated user ID set by JWTAuthMiddleware.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
