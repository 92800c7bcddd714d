package middleware

import (
	"net/http"

	"lexdesk/models"
	"lexdesk/services/callable"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the caller holds one of
// the given roles. It must run after SessionAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, string(callable.Unauthenticated), "Missing session")
			return
		}
		if !allowed[caller.Role] {
			utils.JSONError(c, http.StatusForbidden, string(callable.PermissionDenied), "Insufficient role")
			return
		}
		c.Next()
	}
}
