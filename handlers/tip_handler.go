package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ecotrackAPI/internal/tip"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

type TipHandler struct {
	tipService *services.TipService
	log        *zap.SugaredLogger
}

func NewTipHandler(tipService *services.TipService, log *zap.SugaredLogger) *TipHandler {
	return &TipHandler{
		tipService: tipService,
		log:        log,
	}
}

// ListTips handles GET /api/tips?limit= and returns tips newest first.
func (h *TipHandler) ListTips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit, err := parseLimit(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tips, err := h.tipService.ListNewest(ctx, limit)
	if err != nil {
		h.log.Errorw("failed to list tips", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tips)
}

func (h *TipHandler) CreateTip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req tip.CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.tipService.Create(ctx, ident, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *TipHandler) UpvoteTip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetIdentity(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.tipService.Upvote(ctx, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Tip upvoted"})
}
