package callable

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"lexdesk/database"
	"lexdesk/models"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// CreateUserRequest is the create-user payload.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

const minPasswordLength = 6

// CreateUser registers a firm member in Firebase Auth, stamps the role as a
// custom claim and stores the profile. Admins only.
func (s *Service) CreateUser(ctx context.Context, caller Caller, req CreateUserRequest) (*models.User, error) {
	if !caller.Role.Privileged() {
		return nil, Errorf(PermissionDenied, "only admins can create users")
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, Errorf(InvalidArgument, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, Errorf(InvalidArgument, "email is invalid")
	}
	if len(req.Password) < minPasswordLength {
		return nil, Errorf(InvalidArgument, "password must be at least %d characters", minPasswordLength)
	}
	if !req.Role.Valid() {
		return nil, Errorf(InvalidArgument, "unknown role %q", req.Role)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, Errorf(AlreadyExists, "a user with email %s already exists", email)
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, wrapInternal("failed to check existing user", err)
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(req.Password).
		DisplayName(name)
	record, err := s.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, Errorf(AlreadyExists, "a user with email %s already exists", email)
		}
		return nil, wrapInternal("failed to create auth user", err)
	}

	if err := s.auth.SetCustomUserClaims(ctx, record.UID, map[string]interface{}{"role": string(req.Role)}); err != nil {
		s.rollbackAuthUser(ctx, record.UID)
		return nil, wrapInternal("failed to set role", err)
	}

	now := s.clock.Now()
	user := &models.User{
		ID:        record.UID,
		Name:      name,
		Email:     email,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.rollbackAuthUser(ctx, record.UID)
		return nil, wrapInternal("failed to store user", err)
	}
	s.audit.Record(ctx, "user.create", caller.UID, database.UsersCollection, user.ID, map[string]string{
		"email": email,
		"role":  string(req.Role),
	})
	return user, nil
}

func (s *Service) rollbackAuthUser(ctx context.Context, uid string) {
	if err := s.auth.DeleteUser(ctx, uid); err != nil {
		s.logger.Error("Failed to roll back auth user", zap.String("uid", uid), zap.Error(err))
	}
}
