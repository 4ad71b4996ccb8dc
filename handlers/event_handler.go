package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ecotrackAPI/internal/event"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

type EventHandler struct {
	eventService *services.EventService
	log          *zap.SugaredLogger
}

func NewEventHandler(eventService *services.EventService, log *zap.SugaredLogger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		log:          log,
	}
}

// ListEvents handles GET /api/events?limit= and returns events soonest
// first.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit, err := parseLimit(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.eventService.ListUpcoming(ctx, limit)
	if err != nil {
		h.log.Errorw("failed to list events", "error", err, "requestId", middleware.GetRequestID(ctx))
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ident, ok := middleware.GetIdentity(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req event.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.eventService.Create(ctx, ident, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
