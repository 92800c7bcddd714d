// Package inbox serves the lawyers' notification inbox.
package inbox

import (
	"context"
	"fmt"

	notificationRepo "lexdesk/database/repository/notification"
	"lexdesk/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Service lists and acknowledges notifications.
type Service struct {
	repo notificationRepo.NotificationRepository
}

func NewService(repo notificationRepo.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// List returns the lawyer's notifications, newest first.
func (s *Service) List(ctx context.Context, lawyerID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	items, err := s.repo.ListForLawyer(ctx, lawyerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkSeen flips one notification to seen. Notifications not addressed to
// lawyerID are reported as not found.
func (s *Service) MarkSeen(ctx context.Context, lawyerID, id string) error {
	return s.repo.MarkSeen(ctx, id, lawyerID)
}

// Unseen counts all of the lawyer's unseen notifications, not just one page.
func (s *Service) Unseen(ctx context.Context, lawyerID string) (int64, error) {
	n, err := s.repo.CountUnseen(ctx, lawyerID)
	if err != nil {
		return 0, fmt.Errorf("count unseen notifications: %w", err)
	}
	return n, nil
}
