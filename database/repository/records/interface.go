package recordsRepo

import (
	"context"

	"lexdesk/database"
	"lexdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LogRepository stores audit entries for privileged writes.
type LogRepository interface {
	Create(ctx context.Context, entry models.LogEntry) (string, error)
	GetByID(ctx context.Context, id string) (*models.LogEntry, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.LogEntry, error)
}

type mongoLogRepo struct {
	coll *mongo.Collection
}

// NewMongoLogRepo returns a new LogRepository instance using MongoDB.
func NewMongoLogRepo(db *mongo.Database) LogRepository {
	return &mongoLogRepo{
		coll: db.Collection(database.LogsCollection),
	}
}
