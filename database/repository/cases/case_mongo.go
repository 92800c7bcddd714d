package caseRepo

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

// MongoCaseRepo implements CaseRepository using MongoDB.
type MongoCaseRepo struct {
	coll *mongo.Collection
}

// NewMongoCaseRepo creates a new instance of CaseRepository using MongoDB.
func NewMongoCaseRepo(db *mongo.Database) CaseRepository {
	repo := &MongoCaseRepo{coll: db.Collection(database.CasesCollection)}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create case indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCaseRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "caseStatus", Value: 1}}},
		{Keys: bson.D{{Key: "lawyer.id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCaseRepo) Create(ctx context.Context, c *models.Case) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *MongoCaseRepo) GetByID(ctx context.Context, id string) (*models.Case, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var c models.Case
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case with id %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoCaseRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update case with id %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoCaseRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete case with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// FindByStatus is not date filtered; hearing windows are checked by the caller.
func (r *MongoCaseRepo) FindByStatus(ctx context.Context, status models.CaseStatus) ([]models.Case, error) {
	ctx, cancel := database.NewContext(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"caseStatus": status})
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer cursor.Close(ctx)

	var cases []models.Case
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("failed to decode cases: %w", err)
	}
	return cases, nil
}
