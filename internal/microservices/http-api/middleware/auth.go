package middleware

import (
	"net/http"
	"strings"

	"bnin/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// OptionalAuth reads an optional "Authorization: Bearer <token>" header and
// stores the token's user_id under "userID". Requests without the header pass
// through untouched; a malformed or invalid token is rejected with 401.
// A nil TokenService disables parsing entirely.
func OptionalAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if tokens == nil || authHeader == "" {
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		userID, err := tokens.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserID returns the authenticated user id when present, otherwise fallback.
func UserID(c *gin.Context, fallback string) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return fallback
}
