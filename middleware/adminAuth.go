package middleware

import (
	"net/http"
	"strings"

	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware guards the ops endpoints with a short-lived HS256
// token signed with ADMIN_JWT_SECRET.
func JWTAuthAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ValidateAdminToken(secret, tokenString)
		if err != nil {
			zap.L().Warn("Admin token rejected", zap.String("ip", getClientIP(c)), zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "Unauthorized admin access")
			return
		}

		c.Set("adminSubject", subject)
		c.Next()
	}
}
