package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecotrackAPI/internal/event"
)

type MongoEventStore struct {
	col *mongo.Collection
}

func NewMongoEventStore(db *mongo.Database) *MongoEventStore {
	return &MongoEventStore{col: db.Collection(eventsCollection)}
}

func (s *MongoEventStore) ListUpcoming(ctx context.Context, limit int) ([]event.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cur.Close(ctx)

	events := []event.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (s *MongoEventStore) Insert(ctx context.Context, e *event.Event) (string, error) {
	res, err := s.col.InsertOne(ctx, e)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	e.ID = oid
	return oid.Hex(), nil
}
