package taskRepo

import (
	"context"

	"lexdesk/models"
)

// TaskRepository defines methods for task data access.
type TaskRepository interface {
	// Create inserts a new task record.
	Create(ctx context.Context, t *models.Task) error
	// GetByID retrieves a task by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// Update applies a partial update to a task.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a task record by its ID.
	Delete(ctx context.Context, id string) error
	// FindDueBetween returns tasks whose endDate string sorts in [from, to).
	FindDueBetween(ctx context.Context, from, to string) ([]models.Task, error)
}
