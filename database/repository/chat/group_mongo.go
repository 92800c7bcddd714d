package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexdesk/database"
	"lexdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoGroupRepo struct {
	coll *mongo.Collection
}

// NewMongoGroupRepo returns a GroupRepository backed by MongoDB.
func NewMongoGroupRepo(db *mongo.Database) GroupRepository {
	r := &mongoGroupRepo{coll: db.Collection(database.GroupsCollection)}
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create group indexes: %v\n", err)
	}
	return r
}

func (r *mongoGroupRepo) Create(ctx context.Context, g *models.Group) error {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *mongoGroupRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	var g models.Group
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch group %s: %w", id, err)
	}
	return &g, nil
}

func (r *mongoGroupRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update group %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoGroupRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete group %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoGroupRepo) ListForMember(ctx context.Context, userID string) ([]models.Group, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"members": userID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return out, nil
}
