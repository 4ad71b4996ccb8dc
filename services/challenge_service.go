package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecotrackAPI/internal/challenge"
	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/userchallenge"
)

type ChallengeService struct {
	challenges storage.ChallengeStore
	joins      storage.UserChallengeStore
	log        *zap.SugaredLogger
}

func NewChallengeService(challenges storage.ChallengeStore, joins storage.UserChallengeStore, log *zap.SugaredLogger) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		joins:      joins,
		log:        log,
	}
}

func (s *ChallengeService) List(ctx context.Context, f storage.ChallengeFilter) ([]challenge.Challenge, error) {
	return s.challenges.List(ctx, f)
}

func (s *ChallengeService) Get(ctx context.Context, id string) (*challenge.Challenge, error) {
	return s.challenges.GetByID(ctx, id)
}

func (s *ChallengeService) Create(ctx context.Context, ident *identity.Identity, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	now := time.Now().UTC()
	c := &challenge.Challenge{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Participants:   0,
		CreatedBy:      ident.UID,
		CreatedByEmail: ident.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := s.challenges.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ChallengeService) Update(ctx context.Context, ident *identity.Identity, id string, req *challenge.UpdateChallengeRequest) (*challenge.Challenge, error) {
	existing, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != ident.UID {
		return nil, ErrForbidden
	}

	if err := s.challenges.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.challenges.GetByID(ctx, id)
}

func (s *ChallengeService) Delete(ctx context.Context, ident *identity.Identity, id string) error {
	existing, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != ident.UID {
		return ErrForbidden
	}

	return s.challenges.Delete(ctx, id)
}

// Join enrolls the authenticated user into a challenge: verify the
// challenge exists, verify no join record exists yet, insert the join
// record, then increment the participants counter. The insert and the
// increment are not atomic; if the increment matches no document (the
// challenge was deleted in between) the freshly inserted join record is
// deleted again so no orphan remains.
func (s *ChallengeService) Join(ctx context.Context, ident *identity.Identity, challengeID string) (*userchallenge.UserChallenge, error) {
	target, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	_, err = s.joins.FindByUserAndChallenge(ctx, ident.UID, challengeID)
	if err == nil {
		return nil, ErrAlreadyJoined
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	uc := &userchallenge.UserChallenge{
		UserID:      ident.UID,
		UserEmail:   ident.Email,
		ChallengeID: target.ID,
		Progress:    0,
		Status:      userchallenge.StatusOngoing,
		JoinDate:    now,
		LastUpdate:  now,
	}

	joinID, err := s.joins.Insert(ctx, uc)
	if err != nil {
		// The unique index catches two concurrent joins racing past the
		// existence check above.
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrAlreadyJoined
		}
		return nil, err
	}

	modified, err := s.challenges.IncrementParticipants(ctx, challengeID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to increment participants: %w", err)
	}
	if !modified {
		// Challenge was deleted between the lookup and the increment.
		// Remove the join record so it does not point at nothing.
		if delErr := s.joins.Delete(ctx, joinID); delErr != nil {
			s.log.Errorw("failed to clean up orphaned join record",
				"userChallengeId", joinID,
				"challengeId", challengeID,
				"error", delErr)
		}
		return nil, storage.ErrNotFound
	}

	return uc, nil
}
