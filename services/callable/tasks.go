package callable

import (
	"context"
	"errors"
	"strings"
	"time"

	"lexdesk/database"
	"lexdesk/models"
	"lexdesk/utils"

	"github.com/google/uuid"
)

// CreateTaskRequest is the create-task payload.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	EndDate     string   `json:"endDate"`
	LawyerIDs   []string `json:"lawyerIds"`
}

// CreateTask stores a PENDING task assigned to the given lawyers. The task
// trigger emails them once the write lands.
func (s *Service) CreateTask(ctx context.Context, caller Caller, req CreateTaskRequest) (*models.Task, error) {
	if !caller.Role.CanManageMatters() {
		return nil, Errorf(PermissionDenied, "role %s cannot create tasks", caller.Role)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, Errorf(InvalidArgument, "title is required")
	}
	if _, err := utils.ParseDeadline(req.EndDate, time.UTC); err != nil {
		return nil, Errorf(InvalidArgument, "endDate must be YYYY-MM-DD or YYYY-MM-DDTHH:MM")
	}
	if len(req.LawyerIDs) == 0 {
		return nil, Errorf(InvalidArgument, "at least one lawyer is required")
	}

	lawyers, err := s.resolveLawyers(ctx, req.LawyerIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task := &models.Task{
		ID:            uuid.New().String(),
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Status:        models.TaskPending,
		EndDate:       req.EndDate,
		LawyerDetails: lawyers,
		CreatedBy:     caller.UID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, wrapInternal("failed to create task", err)
	}
	s.audit.Record(ctx, "task.create", caller.UID, database.TasksCollection, task.ID, map[string]string{"title": title})
	return task, nil
}

// resolveLawyers loads each id, keeping request order and dropping repeats.
func (s *Service) resolveLawyers(ctx context.Context, ids []string) ([]models.LawyerRef, error) {
	refs := make([]models.LawyerRef, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ref, err := s.lawyerRef(ctx, id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *Service) lawyerRef(ctx context.Context, id string) (models.LawyerRef, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return models.LawyerRef{}, Errorf(NotFound, "user %s not found", id)
	}
	if err != nil {
		return models.LawyerRef{}, wrapInternal("failed to load user", err)
	}
	return models.LawyerRef{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}
