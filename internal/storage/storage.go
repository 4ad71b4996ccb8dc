// Package storage defines the per-collection store interfaces and their
// MongoDB implementations. Handlers and services depend on the interfaces
// only, so tests run against the in-memory versions in storagetest.
package storage

import (
	"context"
	"errors"
	"time"

	"ecotrackAPI/internal/challenge"
	"ecotrackAPI/internal/event"
	"ecotrackAPI/internal/tip"
	"ecotrackAPI/internal/userchallenge"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
	ErrDuplicate = errors.New("duplicate document")
)

// ChallengeFilter mirrors the query parameters of GET /api/challenges.
// Zero values mean "no constraint".
type ChallengeFilter struct {
	Categories      []string
	StartAfter      *time.Time
	StartBefore     *time.Time
	MinParticipants *int
	MaxParticipants *int
	Search          string
}

type ChallengeStore interface {
	List(ctx context.Context, f ChallengeFilter) ([]challenge.Challenge, error)
	GetByID(ctx context.Context, id string) (*challenge.Challenge, error)
	Insert(ctx context.Context, c *challenge.Challenge) (string, error)
	Update(ctx context.Context, id string, req *challenge.UpdateChallengeRequest) error
	Delete(ctx context.Context, id string) error
	// IncrementParticipants reports whether a challenge document was
	// actually modified, so callers can detect a concurrent delete.
	IncrementParticipants(ctx context.Context, id string, delta int) (bool, error)
}

type TipStore interface {
	ListNewest(ctx context.Context, limit int) ([]tip.Tip, error)
	Insert(ctx context.Context, t *tip.Tip) (string, error)
	IncrementUpvotes(ctx context.Context, id string) (bool, error)
}

type EventStore interface {
	ListUpcoming(ctx context.Context, limit int) ([]event.Event, error)
	Insert(ctx context.Context, e *event.Event) (string, error)
}

type UserChallengeStore interface {
	FindByUserAndChallenge(ctx context.Context, userID, challengeID string) (*userchallenge.UserChallenge, error)
	ListByUser(ctx context.Context, userID string) ([]userchallenge.UserChallenge, error)
	ListByChallenge(ctx context.Context, challengeID string) ([]userchallenge.UserChallenge, error)
	Insert(ctx context.Context, uc *userchallenge.UserChallenge) (string, error)
	Delete(ctx context.Context, id string) error
	// UpdateProgress matches on both id and userID so a user can never touch
	// someone else's join record. ErrNotFound covers both "absent" and
	// "not yours".
	UpdateProgress(ctx context.Context, id, userID string, progress int, status string) (*userchallenge.UserChallenge, error)
}
