package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotrackAPI/internal/userchallenge"
)

func joinAs(t *testing.T, env *testEnv, uid, challengeID string) string {
	t.Helper()

	rr := env.do(http.MethodPost, "/api/challenges/join/"+challengeID, uid, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp["id"]
}

func TestUpdateProgress_OutOfRange(t *testing.T) {
	env := newTestEnv(t)
	c := createChallenge(t, env, "user_b", "Plant a tree", "Nature")
	joinID := joinAs(t, env, "user_a", c.ID.Hex())

	body := `{"progress":150}`
	rr := env.do(http.MethodPatch, "/api/user-challenges/"+joinID+"/progress", "user_a", &body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateProgress_Finishes(t *testing.T) {
	env := newTestEnv(t)
	c := createChallenge(t, env, "user_b", "Plant a tree", "Nature")
	joinID := joinAs(t, env, "user_a", c.ID.Hex())

	body := `{"progress":100}`
	rr := env.do(http.MethodPatch, "/api/user-challenges/"+joinID+"/progress", "user_a", &body)
	require.Equal(t, http.StatusOK, rr.Code)

	var got userchallenge.UserChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, userchallenge.StatusFinished, got.Status)
}

func TestUpdateProgress_SomeoneElsesRecord(t *testing.T) {
	env := newTestEnv(t)
	c := createChallenge(t, env, "user_b", "Plant a tree", "Nature")
	joinID := joinAs(t, env, "user_a", c.ID.Hex())

	body := `{"progress":50}`
	rr := env.do(http.MethodPatch, "/api/user-challenges/"+joinID+"/progress", "user_b", &body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListMyActivities_OnlyMine(t *testing.T) {
	env := newTestEnv(t)
	c1 := createChallenge(t, env, "creator", "One", "Transport")
	c2 := createChallenge(t, env, "creator", "Two", "Transport")

	joinAs(t, env, "user_a", c1.ID.Hex())
	joinAs(t, env, "user_a", c2.ID.Hex())
	joinAs(t, env, "user_b", c1.ID.Hex())

	rr := env.do(http.MethodGet, "/api/user-challenges/my-activities", "user_a", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []userchallenge.UserChallenge
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	for _, uc := range got {
		assert.Equal(t, "user_a", uc.UserID)
	}
}

func TestListMyActivities_NoAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/api/user-challenges/my-activities", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
