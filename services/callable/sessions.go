package callable

import (
	"context"
	"errors"
	"time"

	"lexdesk/database"
	"lexdesk/models"

	"go.uber.org/zap"
)

// recentSignIn bounds how old the ID token's sign-in may be when it is
// exchanged for a session cookie.
const recentSignIn = 5 * time.Minute

// Session is the result of verifying a session cookie.
type Session struct {
	UID   string      `json:"uid"`
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role"`
}

// CreateSession exchanges a fresh Firebase ID token for a session cookie.
func (s *Service) CreateSession(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", Errorf(InvalidArgument, "idToken is required")
	}
	token, err := s.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", Errorf(Unauthenticated, "invalid ID token")
	}
	if s.clock.Now().Sub(time.Unix(token.AuthTime, 0)) > recentSignIn {
		return "", Errorf(Unauthenticated, "recent sign-in required")
	}

	cookie, err := s.auth.SessionCookie(ctx, idToken, s.sessionTTL)
	if err != nil {
		return "", wrapInternal("failed to create session", err)
	}
	s.logger.Info("Session created", zap.String("uid", token.UID))
	return cookie, nil
}

// VerifySession checks a session cookie, including revocation, and resolves
// the caller's role from the custom claim or, failing that, the profile.
func (s *Service) VerifySession(ctx context.Context, cookie string) (*Session, error) {
	if cookie == "" {
		return nil, Errorf(Unauthenticated, "no session")
	}
	token, err := s.auth.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		return nil, Errorf(Unauthenticated, "session is invalid or revoked")
	}

	sess := &Session{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		sess.Email = email
	}
	if role, ok := token.Claims["role"].(string); ok && models.Role(role).Valid() {
		sess.Role = models.Role(role)
		return sess, nil
	}

	u, err := s.users.GetByID(ctx, token.UID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, Errorf(PermissionDenied, "no profile for this account")
	}
	if err != nil {
		return nil, wrapInternal("failed to load profile", err)
	}
	sess.Role = u.Role
	return sess, nil
}

// RevokeSession revokes every refresh token of the cookie's owner, which
// also invalidates all of their session cookies.
func (s *Service) RevokeSession(ctx context.Context, cookie string) error {
	sess, err := s.VerifySession(ctx, cookie)
	if err != nil {
		return err
	}
	if err := s.auth.RevokeRefreshTokens(ctx, sess.UID); err != nil {
		return wrapInternal("failed to revoke session", err)
	}
	s.logger.Info("Session revoked", zap.String("uid", sess.UID))
	return nil
}
