package chat

import (
	"context"
	"time"

	"lexdesk/models"
)

// EventType names a real-time chat event.
type EventType string

const (
	EventMessageSent    EventType = "message.sent"
	EventMessageEdited  EventType = "message.edited"
	EventMessageDeleted EventType = "message.deleted"
	EventMessagesSeen   EventType = "messages.seen"
)

// Event is what subscribers of a conversation receive.
type Event struct {
	Type           EventType       `json:"type"`
	ConversationID string          `json:"conversationId"`
	Message        *models.Message `json:"message,omitempty"`
	ReaderID       string          `json:"readerId,omitempty"`
	Count          int64           `json:"count,omitempty"`
	At             time.Time       `json:"at"`
}

// Broadcaster fans events out to everyone watching a conversation.
type Broadcaster interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe streams events for one conversation until cancel is called
	// or ctx ends.
	Subscribe(ctx context.Context, conversationID string) (events <-chan Event, cancel func(), err error)
}

// UnseenTracker keeps the per-user unseen counters and group markers.
type UnseenTracker interface {
	IncrDirect(ctx context.Context, recipientID, senderID string) error
	ResetDirect(ctx context.Context, recipientID, senderID string) error
	// DirectCounts maps sender id to unseen count for userID.
	DirectCounts(ctx context.Context, userID string) (map[string]int64, error)
	MarkGroupSeen(ctx context.Context, userID, groupID string, at time.Time) error
	// GroupSeenAt returns the zero time when the user never opened the group.
	GroupSeenAt(ctx context.Context, userID, groupID string) (time.Time, error)
}
