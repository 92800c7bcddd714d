package caseRepo

import (
	"context"

	"lexdesk/models"
)

// CaseRepository defines methods for case data access.
type CaseRepository interface {
	// Create inserts a new case record.
	Create(ctx context.Context, c *models.Case) error
	// GetByID retrieves a case by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Case, error)
	// Update applies a partial update to a case.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a case record by its ID.
	Delete(ctx context.Context, id string) error
	// FindByStatus returns every case in the given status.
	FindByStatus(ctx context.Context, status models.CaseStatus) ([]models.Case, error)
}
