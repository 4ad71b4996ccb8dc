package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecotrackAPI/internal/userchallenge"
)

type MongoUserChallengeStore struct {
	col *mongo.Collection
}

func NewMongoUserChallengeStore(db *mongo.Database) *MongoUserChallengeStore {
	return &MongoUserChallengeStore{col: db.Collection(userChallengesCollection)}
}

func (s *MongoUserChallengeStore) FindByUserAndChallenge(ctx context.Context, userID, challengeID string) (*userchallenge.UserChallenge, error) {
	oid, err := parseObjectID(challengeID)
	if err != nil {
		return nil, err
	}

	var uc userchallenge.UserChallenge
	err = s.col.FindOne(ctx, bson.M{"userId": userID, "challengeId": oid}).Decode(&uc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up join record: %w", err)
	}
	return &uc, nil
}

func (s *MongoUserChallengeStore) ListByUser(ctx context.Context, userID string) ([]userchallenge.UserChallenge, error) {
	cur, err := s.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list join records: %w", err)
	}
	defer cur.Close(ctx)

	records := []userchallenge.UserChallenge{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode join records: %w", err)
	}
	return records, nil
}

func (s *MongoUserChallengeStore) ListByChallenge(ctx context.Context, challengeID string) ([]userchallenge.UserChallenge, error) {
	oid, err := parseObjectID(challengeID)
	if err != nil {
		return nil, err
	}

	cur, err := s.col.Find(ctx, bson.M{"challengeId": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to list join records: %w", err)
	}
	defer cur.Close(ctx)

	records := []userchallenge.UserChallenge{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode join records: %w", err)
	}
	return records, nil
}

func (s *MongoUserChallengeStore) Insert(ctx context.Context, uc *userchallenge.UserChallenge) (string, error) {
	res, err := s.col.InsertOne(ctx, uc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert join record: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	uc.ID = oid
	return oid.Hex(), nil
}

func (s *MongoUserChallengeStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete join record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserChallengeStore) UpdateProgress(ctx context.Context, id, userID string, progress int, status string) (*userchallenge.UserChallenge, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"progress":   progress,
		"status":     status,
		"lastUpdate": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var uc userchallenge.UserChallenge
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "userId": userID}, update, opts).Decode(&uc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return &uc, nil
}
