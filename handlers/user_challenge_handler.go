package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ecotrackAPI/internal/userchallenge"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

type UserChallengeHandler struct {
	userChallengeService *services.UserChallengeService
	log                  *zap.SugaredLogger
}

func NewUserChallengeHandler(userChallengeService *services.UserChallengeService, log *zap.SugaredLogger) *UserChallengeHandler {
	return &UserChallengeHandler{
		userChallengeService: userChallengeService,
		log:                  log,
	}
}

// ListMyActivities handles GET /api/user-challenges/my-activities.
func (h *UserChallengeHandler) ListMyActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	records, err := h.userChallengeService.ListMyActivities(ctx, ident.UID)
	if err != nil {
		h.log.Errorw("failed to list user challenges", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// UpdateProgress handles PATCH /api/user-challenges/{id}/progress. Only
// the owning user's record matches; everyone else gets a 404.
func (h *UserChallengeHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req userchallenge.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.userChallengeService.UpdateProgress(ctx, ident.UID, mux.Vars(r)["id"], req.Progress)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// ListParticipants handles GET /api/user-challenges/participants/{id}.
func (h *UserChallengeHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetIdentity(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	participants, err := h.userChallengeService.ListParticipants(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.log.Errorw("failed to list participants", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, participants)
}
