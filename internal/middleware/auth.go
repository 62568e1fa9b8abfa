package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth rejects requests whose Authorization header does not carry
// exactly token. Rejected requests never reach the handler.
func BearerAuth(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}
		presented := []byte(strings.TrimPrefix(header, "Bearer "))
		if subtle.ConstantTimeCompare(presented, expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Next()
	}
}
