package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecotrackAPI/internal/tip"
)

func seedTip(t *testing.T, env *testEnv, title string, createdAt time.Time) string {
	t.Helper()

	id, err := env.tips.Insert(context.Background(), &tip.Tip{
		Title:      title,
		AuthorName: "Seeder",
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	return id
}

func TestListTips_NewestFirstWithLimit(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	seedTip(t, env, "oldest", now.Add(-2*time.Hour))
	seedTip(t, env, "middle", now.Add(-time.Hour))
	seedTip(t, env, "newest", now)

	rr := env.do(http.MethodGet, "/api/tips?limit=2", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []tip.Tip
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
}

func TestListTips_BadLimit(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/api/tips?limit=many", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateTip(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Cold wash","content":"Wash clothes at 30C","authorName":"Alice"}`
	rr := env.do(http.MethodPost, "/api/tips", "user_a", &body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var got tip.Tip
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Cold wash", got.Title)
	assert.Equal(t, 0, got.Upvotes)
	assert.Equal(t, "user_a", got.CreatedBy)
}

func TestCreateTip_NoAuth(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Cold wash"}`
	rr := env.do(http.MethodPost, "/api/tips", "", &body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpvoteTip(t *testing.T) {
	env := newTestEnv(t)
	id := seedTip(t, env, "Cold wash", time.Now().UTC())

	rr := env.do(http.MethodPost, "/api/tips/"+id+"/upvote", "user_a", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(http.MethodGet, "/api/tips", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []tip.Tip
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Upvotes)
}

func TestUpvoteTip_Unknown(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/api/tips/"+primitive.NewObjectID().Hex()+"/upvote", "user_a", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
