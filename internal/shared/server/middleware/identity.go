package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// AnonymousUserID is used when a request carries no X-User-Id header.
const AnonymousUserID = "anonymous"

const userIDKey = "userId"

// Identity resolves the caller from the X-User-Id header. Authentication is
// handled upstream; this only scopes data to the supplied owner.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			userID = AnonymousUserID
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
