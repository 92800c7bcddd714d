package database

import (
	"context"
	"fmt"
	"time"

	"lexdesk/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CasesCollection         = "cases"
	TasksCollection         = "tasks"
	AppointmentsCollection  = "appointments"
	NotificationsCollection = "notifications"
	MessagesCollection      = "messages"
	GroupsCollection        = "groups"
	UsersCollection         = "users"
	LogsCollection          = "logs"
)

// InitDB opens the MongoDB connection and verifies it with a ping.
func InitDB(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// NewContext creates a context with the given timeout, derived from parent.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
