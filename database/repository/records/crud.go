package recordsRepo

import (
	"context"
	"errors"
	"time"

	"lexdesk/database"
	"lexdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new audit entry and returns its ID.
func (r *mongoLogRepo) Create(ctx context.Context, entry models.LogEntry) (string, error) {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// GetByID returns an audit entry by its ID.
func (r *mongoLogRepo) GetByID(ctx context.Context, id string) (*models.LogEntry, error) {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	var entry models.LogEntry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListByEntity fetches the history of one document, oldest first.
func (r *mongoLogRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.LogEntry, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"entityType": entityType, "entityId": entityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
