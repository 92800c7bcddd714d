// File: lexdesk/handlers/bundle.go
package handlers

import (
	"context"
	"time"

	"lexdesk/models"
	"lexdesk/services/callable"
	"lexdesk/services/chat"
	"lexdesk/services/reminders"
)

// CallableService is implemented by *callable.Service.
type CallableService interface {
	CreateTask(ctx context.Context, caller callable.Caller, req callable.CreateTaskRequest) (*models.Task, error)
	CreateCase(ctx context.Context, caller callable.Caller, req callable.CreateCaseRequest) (*models.Case, error)
	CreateUser(ctx context.Context, caller callable.Caller, req callable.CreateUserRequest) (*models.User, error)
	CreateSession(ctx context.Context, idToken string) (string, error)
	VerifySession(ctx context.Context, cookie string) (*callable.Session, error)
	RevokeSession(ctx context.Context, cookie string) error
	SessionTTL() time.Duration
}

// ChatService is implemented by *chat.Service.
type ChatService interface {
	Send(ctx context.Context, req chat.SendRequest) (*models.Message, error)
	Edit(ctx context.Context, userID, messageID, content string) (*models.Message, error)
	Delete(ctx context.Context, userID, messageID string) (*models.Message, error)
	MarkDirectSeen(ctx context.Context, userID, otherID string) (int64, error)
	MarkGroupSeen(ctx context.Context, userID, groupID string) error
	Unseen(ctx context.Context, userID string) (*chat.UnseenSummary, error)
	History(ctx context.Context, req chat.HistoryRequest) ([]models.Message, error)
	Subscribe(ctx context.Context, userID, conversationID string) (<-chan chat.Event, func(), error)
	CreateGroup(ctx context.Context, actorID string, role models.Role, name string, members []string) (*models.Group, error)
	UpdateGroup(ctx context.Context, actorID string, role models.Role, groupID string, upd chat.GroupUpdate) (*models.Group, error)
	DeleteGroup(ctx context.Context, actorID string, role models.Role, groupID string) error
	ListGroups(ctx context.Context, userID string) ([]models.Group, error)
}

// InboxService is implemented by *inbox.Service.
type InboxService interface {
	List(ctx context.Context, lawyerID string, limit int64) ([]models.Notification, error)
	MarkSeen(ctx context.Context, lawyerID, id string) error
	Unseen(ctx context.Context, lawyerID string) (int64, error)
}

// JobRunner is implemented by *reminders.Runner.
type JobRunner interface {
	JobNames() []string
	Run(ctx context.Context, name string) (reminders.Result, error)
}

// JobEnqueuer is implemented by *cron.Worker.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, payload models.JobPayload) (string, error)
}

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	Callable *CallableHandler
	Chat     *ChatHandler
	Inbox    *InboxHandler
	Admin    *AdminHandler
	Health   *HealthHandler
}
