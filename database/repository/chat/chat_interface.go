package chatRepo

import (
	"context"
	"time"

	"lexdesk/models"
)

// MessageRepository defines methods for the messages collection.
type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// UpdateLive applies a partial update to a message only while it is still
	// live and sent by senderID. It returns database.ErrNotFound otherwise.
	UpdateLive(ctx context.Context, id, senderID string, fields map[string]any) error
	// ListConversation returns up to limit messages older than before, newest
	// first. A zero before means "from the latest".
	ListConversation(ctx context.Context, conversationID string, before time.Time, limit int64) ([]models.Message, error)
	// MarkDirectSeen flips every unseen direct message from senderID to
	// recipientID and returns how many changed.
	MarkDirectSeen(ctx context.Context, recipientID, senderID string) (int64, error)
	// CountGroupSince counts live group messages newer than since that were
	// not sent by userID.
	CountGroupSince(ctx context.Context, groupID, userID string, since time.Time) (int64, error)
}

// GroupRepository defines methods for the groups collection.
type GroupRepository interface {
	Create(ctx context.Context, g *models.Group) error
	GetByID(ctx context.Context, id string) (*models.Group, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// ListForMember returns the groups userID belongs to.
	ListForMember(ctx context.Context, userID string) ([]models.Group, error)
}
