package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ecotrackAPI/handlers"
	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/internal/storage/storagetest"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

// stubVerifier treats the bearer token itself as the UID, so tests can
// authenticate as any user by sending "Bearer <uid>".
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if token == "bad-token" {
		return nil, errors.New("invalid token")
	}
	return &identity.Identity{
		UID:   token,
		Email: token + "@example.com",
		Name:  "Test " + token,
	}, nil
}

type testEnv struct {
	router     *mux.Router
	challenges *storagetest.MemChallengeStore
	tips       *storagetest.MemTipStore
	events     *storagetest.MemEventStore
	joins      *storagetest.MemUserChallengeStore

	challengeService     *services.ChallengeService
	tipService           *services.TipService
	eventService         *services.EventService
	userChallengeService *services.UserChallengeService
}

// newTestEnv wires the full route table against in-memory stores, matching
// the wiring in main.go.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop().Sugar()
	env := &testEnv{
		challenges: storagetest.NewMemChallengeStore(),
		tips:       storagetest.NewMemTipStore(),
		events:     storagetest.NewMemEventStore(),
		joins:      storagetest.NewMemUserChallengeStore(),
	}

	env.challengeService = services.NewChallengeService(env.challenges, env.joins, log)
	env.tipService = services.NewTipService(env.tips, log)
	env.eventService = services.NewEventService(env.events, log)
	env.userChallengeService = services.NewUserChallengeService(env.joins, &noProfiles{}, log)

	challengeHandler := handlers.NewChallengeHandler(env.challengeService, log)
	tipHandler := handlers.NewTipHandler(env.tipService, log)
	eventHandler := handlers.NewEventHandler(env.eventService, log)
	userChallengeHandler := handlers.NewUserChallengeHandler(env.userChallengeService, log)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	api.HandleFunc("/challenges/{id}", challengeHandler.GetChallenge).Methods("GET")
	api.HandleFunc("/tips", tipHandler.ListTips).Methods("GET")
	api.HandleFunc("/events", eventHandler.ListEvents).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(stubVerifier{}))

	protected.HandleFunc("/challenges", challengeHandler.CreateChallenge).Methods("POST")
	protected.HandleFunc("/challenges/join/{id}", challengeHandler.JoinChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}", challengeHandler.UpdateChallenge).Methods("PATCH")
	protected.HandleFunc("/challenges/{id}", challengeHandler.DeleteChallenge).Methods("DELETE")
	protected.HandleFunc("/tips", tipHandler.CreateTip).Methods("POST")
	protected.HandleFunc("/tips/{id}/upvote", tipHandler.UpvoteTip).Methods("POST")
	protected.HandleFunc("/events", eventHandler.CreateEvent).Methods("POST")
	protected.HandleFunc("/user-challenges/my-activities", userChallengeHandler.ListMyActivities).Methods("GET")
	protected.HandleFunc("/user-challenges/participants/{id}", userChallengeHandler.ListParticipants).Methods("GET")
	protected.HandleFunc("/user-challenges/{id}/progress", userChallengeHandler.UpdateProgress).Methods("PATCH")

	env.router = r
	return env
}

func challengeFilterAll() storage.ChallengeFilter {
	return storage.ChallengeFilter{}
}

type noProfiles struct{}

func (noProfiles) GetProfiles(context.Context, []string) (map[string]identity.Profile, error) {
	return map[string]identity.Profile{}, nil
}

// do sends a request through the test router, optionally authenticated as
// the given user.
func (env *testEnv) do(method, path, uid string, body *string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+uid)
	}

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}
