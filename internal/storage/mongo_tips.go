package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecotrackAPI/internal/tip"
)

type MongoTipStore struct {
	col *mongo.Collection
}

func NewMongoTipStore(db *mongo.Database) *MongoTipStore {
	return &MongoTipStore{col: db.Collection(tipsCollection)}
}

func (s *MongoTipStore) ListNewest(ctx context.Context, limit int) ([]tip.Tip, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	defer cur.Close(ctx)

	tips := []tip.Tip{}
	if err := cur.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("failed to decode tips: %w", err)
	}
	return tips, nil
}

func (s *MongoTipStore) Insert(ctx context.Context, t *tip.Tip) (string, error) {
	res, err := s.col.InsertOne(ctx, t)
	if err != nil {
		return "", fmt.Errorf("failed to insert tip: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	t.ID = oid
	return oid.Hex(), nil
}

func (s *MongoTipStore) IncrementUpvotes(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"upvotes": 1}})
	if err != nil {
		return false, fmt.Errorf("failed to upvote tip: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
