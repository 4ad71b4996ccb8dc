// Package storagetest provides in-memory implementations of the storage
// interfaces so services and handlers can be tested without a running
// MongoDB instance. Behavior mirrors the Mongo stores, including the
// unique (userId, challengeId) constraint on join records.
package storagetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecotrackAPI/internal/challenge"
	"ecotrackAPI/internal/event"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/tip"
	"ecotrackAPI/internal/userchallenge"
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return oid, nil
}

type MemChallengeStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]challenge.Challenge
}

func NewMemChallengeStore() *MemChallengeStore {
	return &MemChallengeStore{docs: make(map[primitive.ObjectID]challenge.Challenge)}
}

func (s *MemChallengeStore) List(_ context.Context, f storage.ChallengeFilter) ([]challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []challenge.Challenge{}
	for _, c := range s.docs {
		if matchesFilter(c, f) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func matchesFilter(c challenge.Challenge, f storage.ChallengeFilter) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, cat := range f.Categories {
			if strings.EqualFold(strings.TrimSpace(cat), c.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.StartAfter != nil && c.StartDate.Before(*f.StartAfter) {
		return false
	}
	if f.StartBefore != nil && c.StartDate.After(*f.StartBefore) {
		return false
	}
	if f.MinParticipants != nil && c.Participants < *f.MinParticipants {
		return false
	}
	if f.MaxParticipants != nil && c.Participants > *f.MaxParticipants {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) {
			return false
		}
	}
	return true
}

func (s *MemChallengeStore) GetByID(_ context.Context, id string) (*challenge.Challenge, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.docs[oid]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (s *MemChallengeStore) Insert(_ context.Context, c *challenge.Challenge) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.docs[c.ID] = *c
	return c.ID.Hex(), nil
}

func (s *MemChallengeStore) Update(_ context.Context, id string, req *challenge.UpdateChallengeRequest) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.docs[oid]
	if !ok {
		return storage.ErrNotFound
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	c.UpdatedAt = time.Now().UTC()
	s.docs[oid] = c
	return nil
}

func (s *MemChallengeStore) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[oid]; !ok {
		return storage.ErrNotFound
	}
	delete(s.docs, oid)
	return nil
}

func (s *MemChallengeStore) IncrementParticipants(_ context.Context, id string, delta int) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.docs[oid]
	if !ok {
		return false, nil
	}
	c.Participants += delta
	s.docs[oid] = c
	return true, nil
}

type MemTipStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]tip.Tip
}

func NewMemTipStore() *MemTipStore {
	return &MemTipStore{docs: make(map[primitive.ObjectID]tip.Tip)}
}

func (s *MemTipStore) ListNewest(_ context.Context, limit int) ([]tip.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []tip.Tip{}
	for _, t := range s.docs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemTipStore) Insert(_ context.Context, t *tip.Tip) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.docs[t.ID] = *t
	return t.ID.Hex(), nil
}

func (s *MemTipStore) IncrementUpvotes(_ context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.docs[oid]
	if !ok {
		return false, nil
	}
	t.Upvotes++
	s.docs[oid] = t
	return true, nil
}

type MemEventStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]event.Event
}

func NewMemEventStore() *MemEventStore {
	return &MemEventStore{docs: make(map[primitive.ObjectID]event.Event)}
}

func (s *MemEventStore) ListUpcoming(_ context.Context, limit int) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []event.Event{}
	for _, e := range s.docs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemEventStore) Insert(_ context.Context, e *event.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.docs[e.ID] = *e
	return e.ID.Hex(), nil
}

type MemUserChallengeStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]userchallenge.UserChallenge

	// FailInserts forces Insert to return an error, for exercising the
	// join workflow's failure paths.
	FailInserts bool
}

func NewMemUserChallengeStore() *MemUserChallengeStore {
	return &MemUserChallengeStore{docs: make(map[primitive.ObjectID]userchallenge.UserChallenge)}
}

func (s *MemUserChallengeStore) FindByUserAndChallenge(_ context.Context, userID, challengeID string) (*userchallenge.UserChallenge, error) {
	oid, err := parseID(challengeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, uc := range s.docs {
		if uc.UserID == userID && uc.ChallengeID == oid {
			return &uc, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *MemUserChallengeStore) ListByUser(_ context.Context, userID string) ([]userchallenge.UserChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []userchallenge.UserChallenge{}
	for _, uc := range s.docs {
		if uc.UserID == userID {
			out = append(out, uc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemUserChallengeStore) ListByChallenge(_ context.Context, challengeID string) ([]userchallenge.UserChallenge, error) {
	oid, err := parseID(challengeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []userchallenge.UserChallenge{}
	for _, uc := range s.docs {
		if uc.ChallengeID == oid {
			out = append(out, uc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemUserChallengeStore) Insert(_ context.Context, uc *userchallenge.UserChallenge) (string, error) {
	if s.FailInserts {
		return "", fmt.Errorf("insert failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.UserID == uc.UserID && existing.ChallengeID == uc.ChallengeID {
			return "", storage.ErrDuplicate
		}
	}
	if uc.ID.IsZero() {
		uc.ID = primitive.NewObjectID()
	}
	s.docs[uc.ID] = *uc
	return uc.ID.Hex(), nil
}

func (s *MemUserChallengeStore) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[oid]; !ok {
		return storage.ErrNotFound
	}
	delete(s.docs, oid)
	return nil
}

func (s *MemUserChallengeStore) UpdateProgress(_ context.Context, id, userID string, progress int, status string) (*userchallenge.UserChallenge, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	uc, ok := s.docs[oid]
	if !ok || uc.UserID != userID {
		return nil, storage.ErrNotFound
	}
	uc.Progress = progress
	uc.Status = status
	uc.LastUpdate = time.Now().UTC()
	s.docs[oid] = uc
	return &uc, nil
}
