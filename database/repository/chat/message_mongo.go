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

type mongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo returns a MessageRepository backed by MongoDB.
func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	r := &mongoMessageRepo{coll: db.Collection(database.MessagesCollection)}
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "senderId", Value: 1}, {Key: "isSeen", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create message indexes: %v\n", err)
	}
	return r
}

func (r *mongoMessageRepo) Create(ctx context.Context, m *models.Message) error {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (r *mongoMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	var m models.Message
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}
	return &m, nil
}

func (r *mongoMessageRepo) UpdateLive(ctx context.Context, id, senderID string, fields map[string]any) error {
	ctx, cancel := database.NewContext(ctx, 3*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "senderId": senderID, "isDeleted": false}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update message %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoMessageRepo) ListConversation(ctx context.Context, conversationID string, before time.Time, limit int64) ([]models.Message, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"conversationId": conversationID}
	if !before.IsZero() {
		filter["timestamp"] = bson.M{"$lt": before}
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return out, nil
}

func (r *mongoMessageRepo) MarkDirectSeen(ctx context.Context, recipientID, senderID string) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"recipientId": recipientID, "senderId": senderID, "isSeen": false},
		bson.M{"$set": bson.M{"isSeen": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages seen: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoMessageRepo) CountGroupSince(ctx context.Context, groupID, userID string, since time.Time) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"groupId":   groupID,
		"senderId":  bson.M{"$ne": userID},
		"isDeleted": false,
		"timestamp": bson.M{"$gt": since},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count group messages: %w", err)
	}
	return n, nil
}
