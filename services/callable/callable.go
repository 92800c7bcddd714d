// Package callable implements the request/response entry points the web
// client calls directly: creating tasks, cases and users, and managing
// session cookies.
package callable

import (
	"context"
	"time"

	caseRepo "lexdesk/database/repository/cases"
	taskRepo "lexdesk/database/repository/task"
	userRepo "lexdesk/database/repository/user"
	"lexdesk/models"
	"lexdesk/services/audit"
	"lexdesk/utils"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// AuthClient is the subset of the Firebase Auth admin client the callables
// use. *auth.Client satisfies it.
type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
	DeleteUser(ctx context.Context, uid string) error
}

// Caller is the authenticated principal behind a request.
type Caller struct {
	UID   string
	Email string
	Role  models.Role
}

// Deps are the collaborators of the callables.
type Deps struct {
	Auth       AuthClient
	Users      userRepo.UserRepository
	Tasks      taskRepo.TaskRepository
	Cases      caseRepo.CaseRepository
	Audit      *audit.Recorder
	Clock      utils.Clock
	SessionTTL time.Duration
	Logger     *zap.Logger
}

// Service hosts every callable.
type Service struct {
	auth       AuthClient
	users      userRepo.UserRepository
	tasks      taskRepo.TaskRepository
	cases      caseRepo.CaseRepository
	audit      *audit.Recorder
	clock      utils.Clock
	sessionTTL time.Duration
	logger     *zap.Logger
}

// DefaultSessionTTL is how long a session cookie lives when not configured.
const DefaultSessionTTL = 5 * 24 * time.Hour

func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.SessionTTL <= 0 {
		d.SessionTTL = DefaultSessionTTL
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		auth:       d.Auth,
		users:      d.Users,
		tasks:      d.Tasks,
		cases:      d.Cases,
		audit:      d.Audit,
		clock:      d.Clock,
		sessionTTL: d.SessionTTL,
		logger:     d.Logger.Named("callable"),
	}
}

// SessionTTL is the lifetime given to new session cookies.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }
