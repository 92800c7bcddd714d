package appointmentRepo

import (
	"context"

	"lexdesk/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindOnDatesBetween returns appointments whose date string sorts in [from, to).
	FindOnDatesBetween(ctx context.Context, from, to string) ([]models.Appointment, error)
}
