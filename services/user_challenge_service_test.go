package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/storage/storagetest"
	"ecotrackAPI/internal/userchallenge"
	"ecotrackAPI/services"
)

type fakeProfiles struct {
	profiles map[string]identity.Profile
}

func (f *fakeProfiles) GetProfiles(_ context.Context, uids []string) (map[string]identity.Profile, error) {
	out := map[string]identity.Profile{}
	for _, uid := range uids {
		if p, ok := f.profiles[uid]; ok {
			out[uid] = p
		}
	}
	return out, nil
}

func seedJoin(t *testing.T, joins *storagetest.MemUserChallengeStore, userID string, challengeID primitive.ObjectID) string {
	t.Helper()

	now := time.Now().UTC()
	id, err := joins.Insert(context.Background(), &userchallenge.UserChallenge{
		UserID:      userID,
		UserEmail:   userID + "@example.com",
		ChallengeID: challengeID,
		Progress:    0,
		Status:      userchallenge.StatusOngoing,
		JoinDate:    now,
		LastUpdate:  now,
	})
	require.NoError(t, err)
	return id
}

func TestUpdateProgress_Bounds(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	svc := services.NewUserChallengeService(joins, &fakeProfiles{}, zap.NewNop().Sugar())
	ctx := context.Background()

	id := seedJoin(t, joins, "user_a", primitive.NewObjectID())

	_, err := svc.UpdateProgress(ctx, "user_a", id, 150)
	assert.ErrorIs(t, err, services.ErrInvalidProgress)

	_, err = svc.UpdateProgress(ctx, "user_a", id, -1)
	assert.ErrorIs(t, err, services.ErrInvalidProgress)
}

func TestUpdateProgress_DerivesStatus(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	svc := services.NewUserChallengeService(joins, &fakeProfiles{}, zap.NewNop().Sugar())
	ctx := context.Background()

	id := seedJoin(t, joins, "user_a", primitive.NewObjectID())

	uc, err := svc.UpdateProgress(ctx, "user_a", id, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, uc.Progress)
	assert.Equal(t, userchallenge.StatusOngoing, uc.Status)

	uc, err = svc.UpdateProgress(ctx, "user_a", id, 100)
	require.NoError(t, err)
	assert.Equal(t, userchallenge.StatusFinished, uc.Status)
}

func TestUpdateProgress_NotYourRecord(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	svc := services.NewUserChallengeService(joins, &fakeProfiles{}, zap.NewNop().Sugar())
	ctx := context.Background()

	id := seedJoin(t, joins, "user_a", primitive.NewObjectID())

	_, err := svc.UpdateProgress(ctx, "user_b", id, 50)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListMyActivities(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	svc := services.NewUserChallengeService(joins, &fakeProfiles{}, zap.NewNop().Sugar())
	ctx := context.Background()

	seedJoin(t, joins, "user_a", primitive.NewObjectID())
	seedJoin(t, joins, "user_a", primitive.NewObjectID())
	seedJoin(t, joins, "user_b", primitive.NewObjectID())

	mine, err := svc.ListMyActivities(ctx, "user_a")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, uc := range mine {
		assert.Equal(t, "user_a", uc.UserID)
	}
}

func TestListParticipants(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	profiles := &fakeProfiles{profiles: map[string]identity.Profile{
		"user_a": {UID: "user_a", DisplayName: "Alice", Email: "a@example.com", PhotoURL: "https://example.com/a.jpg"},
	}}
	svc := services.NewUserChallengeService(joins, profiles, zap.NewNop().Sugar())
	ctx := context.Background()

	challengeID := primitive.NewObjectID()
	seedJoin(t, joins, "user_a", challengeID)
	seedJoin(t, joins, "user_gone", challengeID)

	got, err := svc.ListParticipants(ctx, challengeID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 2)

	byName := map[string]userchallenge.Participant{}
	for _, p := range got {
		byName[p.DisplayName] = p
	}

	alice, ok := byName["Alice"]
	require.True(t, ok)
	assert.Equal(t, "a@example.com", alice.Email)

	// Users the provider no longer knows degrade to Anonymous.
	_, ok = byName["Anonymous"]
	assert.True(t, ok)
}

func TestListParticipants_Empty(t *testing.T) {
	joins := storagetest.NewMemUserChallengeStore()
	svc := services.NewUserChallengeService(joins, &fakeProfiles{}, zap.NewNop().Sugar())

	got, err := svc.ListParticipants(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, got)
}
