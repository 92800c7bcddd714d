package userRepo

import (
	"context"

	"lexdesk/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its Firebase UID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves every user whose id is in ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll retrieves all users ordered by name.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update applies a partial update to a user record.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
