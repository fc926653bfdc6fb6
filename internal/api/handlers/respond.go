package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sunlighthq/tasks-service/internal/entity"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the error taxonomy onto HTTP statuses. Anything not in
// the taxonomy is a 500 without detail.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidTaskData), errors.Is(err, entity.ErrInvalidUserData):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrInvalidToken):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrTaskNotFound), errors.Is(err, entity.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrStoreUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: entity.ErrStoreUnavailable.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
