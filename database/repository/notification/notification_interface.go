package notificationRepo

import (
	"context"
	"time"

	"lexdesk/models"
)

// NotificationRepository defines methods for the notifications collection.
type NotificationRepository interface {
	// Create inserts a notification and returns its ID.
	Create(ctx context.Context, n models.Notification) (string, error)
	// ListForLawyer returns the lawyer's notifications, newest first.
	ListForLawyer(ctx context.Context, lawyerID string, limit int64) ([]models.Notification, error)
	// CountUnseen counts every unseen notification addressed to lawyerID.
	CountUnseen(ctx context.Context, lawyerID string) (int64, error)
	// MarkSeen flips a notification to seen if lawyerID is one of its recipients.
	MarkSeen(ctx context.Context, id, lawyerID string) error
	// FindCreatedOnOrBefore returns notifications with createdAt <= cutoff.
	FindCreatedOnOrBefore(ctx context.Context, cutoff time.Time) ([]models.Notification, error)
	// Delete removes a notification by ID.
	Delete(ctx context.Context, id string) error
}
