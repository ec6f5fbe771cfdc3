package handlers

import (
	"github.com/ledgerline/invoicing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantAndUser pulls the authenticated tenant and user IDs out of the
// request context. Both are set by the auth middleware; a missing value means
// the request never passed it.
func tenantAndUser(c *gin.Context) (tenantID string, userID string, ok bool) {
	tenantID, ok = middleware.GetTenantIDFromContext(c)
	if !ok {
		return "", "", false
	}
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		return "", "", false
	}
	return tenantID, userID, true
}
