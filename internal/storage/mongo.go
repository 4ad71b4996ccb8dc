package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	challengesCollection     = "challenges"
	tipsCollection           = "tips"
	eventsCollection         = "events"
	userChallengesCollection = "userChallenges"
)

// EnsureIndexes creates the indexes the stores rely on. The unique compound
// index on userChallenges is what makes concurrent joins for the same
// (user, challenge) pair safe: the second insert fails with a duplicate key
// error instead of producing a second join record.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(userChallengesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "challengeId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_challenge"),
	})
	if err != nil {
		return fmt.Errorf("failed to create userChallenges index: %w", err)
	}

	_, err = db.Collection(challengesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "startDate", Value: 1}},
		Options: options.Index().SetName("idx_start_date"),
	})
	if err != nil {
		return fmt.Errorf("failed to create challenges index: %w", err)
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
