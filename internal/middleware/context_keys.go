package middleware

import "github.com/gin-gonic/gin"

// userIDKey and tenantIDKey hold the authenticated caller's identity in the
// request context. They are set by AuthMiddleware.
const (
	userIDKey   = contextKey("userID")
	tenantIDKey = contextKey("tenantID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetTenantIDFromContext retrieves the authenticated caller's tenant ID from
// the Gin context. It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantIDVal := c.Request.Context().Value(tenantIDKey)
	if tenantIDVal == nil {
		return "", false
	}
	tenantID, ok := tenantIDVal.(string)
	return tenantID, ok
}
