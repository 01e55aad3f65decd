package middleware

import (
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped logger in the request context.
	loggerCtxKey = contextKey("logger")

	// memberIDKey stores the authenticated member's ID in the request context.
	memberIDKey = contextKey("memberID")
)

// GetMemberIDFromContext retrieves the authenticated member ID from the Gin
// context. It returns the member ID and a boolean indicating if it was found.
func GetMemberIDFromContext(c *gin.Context) (string, bool) {
	memberIDVal, exists := c.Get(string(memberIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(memberIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	memberID, ok := memberIDVal.(string)
	if !ok {
		return "", false
	}
	return memberID, true
}
