package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildChallengeFilter_Empty(t *testing.T) {
	got := buildChallengeFilter(ChallengeFilter{})
	assert.Empty(t, got, "no filters means match-all query")
}

func TestBuildChallengeFilter_Categories(t *testing.T) {
	got := buildChallengeFilter(ChallengeFilter{Categories: []string{"Energy Saving", " Transport "}})

	in, ok := got["category"].(bson.M)
	require.True(t, ok)
	patterns, ok := in["$in"].([]primitive.Regex)
	require.True(t, ok)
	require.Len(t, patterns, 2)

	assert.Equal(t, "^Energy Saving$", patterns[0].Pattern)
	assert.Equal(t, "i", patterns[0].Options)
	assert.Equal(t, "^Transport$", patterns[1].Pattern, "category values are trimmed")
}

func TestBuildChallengeFilter_EscapesRegexMeta(t *testing.T) {
	got := buildChallengeFilter(ChallengeFilter{Categories: []string{"Re(use)"}})

	patterns := got["category"].(bson.M)["$in"].([]primitive.Regex)
	require.Len(t, patterns, 1)
	assert.Equal(t, `^Re\(use\)$`, patterns[0].Pattern)
}

func TestBuildChallengeFilter_DateRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	got := buildChallengeFilter(ChallengeFilter{StartAfter: &from, StartBefore: &to})

	rng, ok := got["startDate"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, from, rng["$gte"])
	assert.Equal(t, to, rng["$lte"])
}

func TestBuildChallengeFilter_ParticipantsRange(t *testing.T) {
	min, max := 5, 50
	got := buildChallengeFilter(ChallengeFilter{MinParticipants: &min, MaxParticipants: &max})

	rng, ok := got["participants"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 5, rng["$gte"])
	assert.Equal(t, 50, rng["$lte"])
}

func TestBuildChallengeFilter_Search(t *testing.T) {
	got := buildChallengeFilter(ChallengeFilter{Search: "solar"})

	or, ok := got["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)

	title := or[0]["title"].(primitive.Regex)
	assert.Equal(t, "solar", title.Pattern)
	assert.Equal(t, "i", title.Options)
	assert.Contains(t, or[1], "description")
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseObjectID("nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}
