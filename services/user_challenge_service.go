package services

import (
	"context"

	"go.uber.org/zap"

	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/userchallenge"
)

type UserChallengeService struct {
	joins    storage.UserChallengeStore
	profiles identity.ProfileLookup
	log      *zap.SugaredLogger
}

func NewUserChallengeService(joins storage.UserChallengeStore, profiles identity.ProfileLookup, log *zap.SugaredLogger) *UserChallengeService {
	return &UserChallengeService{
		joins:    joins,
		profiles: profiles,
		log:      log,
	}
}

func (s *UserChallengeService) ListMyActivities(ctx context.Context, userID string) ([]userchallenge.UserChallenge, error) {
	return s.joins.ListByUser(ctx, userID)
}

// UpdateProgress sets the caller's progress on a join record. Status is
// derived server-side: 100 means "Finished", anything below stays
// "Ongoing".
func (s *UserChallengeService) UpdateProgress(ctx context.Context, userID, id string, progress int) (*userchallenge.UserChallenge, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}

	status := userchallenge.StatusOngoing
	if progress == 100 {
		status = userchallenge.StatusFinished
	}

	return s.joins.UpdateProgress(ctx, id, userID, progress, status)
}

// ListParticipants returns the join records of a challenge enriched with
// display names and photos from the identity provider. Users the provider
// no longer knows show up as "Anonymous".
func (s *UserChallengeService) ListParticipants(ctx context.Context, challengeID string) ([]userchallenge.Participant, error) {
	records, err := s.joins.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []userchallenge.Participant{}, nil
	}

	uids := make([]string, 0, len(records))
	for _, rec := range records {
		uids = append(uids, rec.UserID)
	}

	profiles, err := s.profiles.GetProfiles(ctx, uids)
	if err != nil {
		return nil, err
	}

	participants := make([]userchallenge.Participant, 0, len(records))
	for _, rec := range records {
		p := userchallenge.Participant{
			ID:          rec.ID,
			DisplayName: "Anonymous",
			JoinDate:    rec.JoinDate,
		}
		if profile, ok := profiles[rec.UserID]; ok {
			if profile.DisplayName != "" {
				p.DisplayName = profile.DisplayName
			}
			p.Email = profile.Email
			p.PhotoURL = profile.PhotoURL
		}
		participants = append(participants, p)
	}
	return participants, nil
}
