package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ecotrackAPI/internal/challenge"
)

type MongoChallengeStore struct {
	col *mongo.Collection
}

func NewMongoChallengeStore(db *mongo.Database) *MongoChallengeStore {
	return &MongoChallengeStore{col: db.Collection(challengesCollection)}
}

func (s *MongoChallengeStore) List(ctx context.Context, f ChallengeFilter) ([]challenge.Challenge, error) {
	cur, err := s.col.Find(ctx, buildChallengeFilter(f))
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer cur.Close(ctx)

	challenges := []challenge.Challenge{}
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, fmt.Errorf("failed to decode challenges: %w", err)
	}
	return challenges, nil
}

func (s *MongoChallengeStore) GetByID(ctx context.Context, id string) (*challenge.Challenge, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var c challenge.Challenge
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &c, nil
}

func (s *MongoChallengeStore) Insert(ctx context.Context, c *challenge.Challenge) (string, error) {
	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return "", fmt.Errorf("failed to insert challenge: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	c.ID = oid
	return oid.Hex(), nil
}

func (s *MongoChallengeStore) Update(ctx context.Context, id string, req *challenge.UpdateChallengeRequest) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.StartDate != nil {
		set["startDate"] = *req.StartDate
	}
	if req.EndDate != nil {
		set["endDate"] = *req.EndDate
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoChallengeStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoChallengeStore) IncrementParticipants(ctx context.Context, id string, delta int) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"participants": delta}})
	if err != nil {
		return false, fmt.Errorf("failed to update participants count: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// buildChallengeFilter translates the query-parameter filter into a Mongo
// filter document. Category matching is case-insensitive exact match,
// search is a case-insensitive substring over title and description.
func buildChallengeFilter(f ChallengeFilter) bson.M {
	query := bson.M{}

	if len(f.Categories) > 0 {
		patterns := make([]primitive.Regex, 0, len(f.Categories))
		for _, c := range f.Categories {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			patterns = append(patterns, primitive.Regex{
				Pattern: "^" + regexp.QuoteMeta(c) + "$",
				Options: "i",
			})
		}
		if len(patterns) > 0 {
			query["category"] = bson.M{"$in": patterns}
		}
	}

	if f.StartAfter != nil || f.StartBefore != nil {
		rng := bson.M{}
		if f.StartAfter != nil {
			rng["$gte"] = *f.StartAfter
		}
		if f.StartBefore != nil {
			rng["$lte"] = *f.StartBefore
		}
		query["startDate"] = rng
	}

	if f.MinParticipants != nil || f.MaxParticipants != nil {
		rng := bson.M{}
		if f.MinParticipants != nil {
			rng["$gte"] = *f.MinParticipants
		}
		if f.MaxParticipants != nil {
			rng["$lte"] = *f.MaxParticipants
		}
		query["participants"] = rng
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	return query
}
