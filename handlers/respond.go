package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecotrackAPI/internal/storage"
	"ecotrackAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps the service/storage error taxonomy onto HTTP
// statuses. Anything unrecognized is a store failure and comes back as a
// generic 500 so internals never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		respondWithError(w, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, services.ErrInvalidProgress):
		respondWithError(w, http.StatusBadRequest, "Progress must be between 0 and 100")
	case errors.Is(err, services.ErrAlreadyJoined):
		respondWithError(w, http.StatusBadRequest, "User already joined this challenge")
	case errors.Is(err, services.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "You do not own this resource")
	case errors.Is(err, storage.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
