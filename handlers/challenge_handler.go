package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ecotrackAPI/internal/challenge"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	log              *zap.SugaredLogger
}

func NewChallengeHandler(challengeService *services.ChallengeService, log *zap.SugaredLogger) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		log:              log,
	}
}

// ListChallenges handles GET /api/challenges with the optional category,
// date-range, participant-range, and search filters.
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	f, err := parseChallengeFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	challenges, err := h.challengeService.List(ctx, f)
	if err != nil {
		h.log.Errorw("failed to list challenges", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.challengeService.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.challengeService.Create(ctx, ident, &req)
	if err != nil {
		h.log.Errorw("failed to create challenge", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ChallengeHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req challenge.UpdateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.challengeService.Update(ctx, ident, mux.Vars(r)["id"], &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ChallengeHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.challengeService.Delete(ctx, ident, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Challenge deleted successfully"})
}

// JoinChallenge handles POST /api/challenges/join/{id}.
func (h *ChallengeHandler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	uc, err := h.challengeService.Join(ctx, ident, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.log.Infow("user joined challenge",
		"userId", ident.UID,
		"challengeId", uc.ChallengeID.Hex(),
		"requestId", middleware.GetRequestID(ctx))

	respondWithJSON(w, http.StatusCreated, challenge.JoinChallengeResponse{
		Message:         "Challenge joined successfully",
		UserChallengeID: uc.ID.Hex(),
	})
}

func parseChallengeFilter(r *http.Request) (storage.ChallengeFilter, error) {
	q := r.URL.Query()
	f := storage.ChallengeFilter{Search: q.Get("search")}

	if category := q.Get("category"); category != "" {
		f.Categories = strings.Split(category, ",")
	}

	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, err
		}
		f.StartAfter = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, err
		}
		f.StartBefore = &t
	}

	if v := q.Get("minParticipants"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errInvalidParam("minParticipants")
		}
		f.MinParticipants = &n
	}
	if v := q.Get("maxParticipants"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, errInvalidParam("maxParticipants")
		}
		f.MaxParticipants = &n
	}

	return f, nil
}
