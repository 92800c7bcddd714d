package middleware

import (
	"context"
	"net/http"
	"strings"

	"lexdesk/services/callable"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerKey = "caller"

// SessionVerifier resolves a session cookie to its owner.
// *callable.Service satisfies it.
type SessionVerifier interface {
	VerifySession(ctx context.Context, cookie string) (*callable.Session, error)
}

// SessionToken reads the session cookie, falling back to a Bearer token so
// that non-browser clients can authenticate too.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuthMiddleware rejects requests without a valid, unrevoked session
// and stores the caller in the context.
func SessionAuthMiddleware(sessions SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, string(callable.Unauthenticated), "Missing session")
			return
		}

		sess, err := sessions.VerifySession(c.Request.Context(), token)
		if err != nil {
			ce := callable.AsError(err)
			if ce.Code == callable.Internal {
				zap.L().Error("SessionAuthMiddleware: verification failed", zap.Error(err))
			}
			utils.JSONError(c, ce.Code.HTTPStatus(), string(ce.Code), ce.Message)
			return
		}

		c.Set(callerKey, callable.Caller{UID: sess.UID, Email: sess.Email, Role: sess.Role})
		c.Next()
	}
}

// CallerFrom returns the caller stored by SessionAuthMiddleware.
func CallerFrom(c *gin.Context) (callable.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return callable.Caller{}, false
	}
	caller, ok := v.(callable.Caller)
	return caller, ok && caller.UID != ""
}

// SetCaller stores a caller in the context.
func SetCaller(c *gin.Context, caller callable.Caller) {
	c.Set(callerKey, caller)
}
