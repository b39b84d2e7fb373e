package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/cosmospt/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dest interface{}) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

// Error messages shared with the web client.
const (
	msgUserExists         = "User already exists"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid credentials"
	msgAchievementMissing = "Achievement not found"
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "Internal server error"
)

// writeServiceError maps service errors to a status and message. notFound
// replaces the message of common.ErrorNotFound; empty keeps err's own text.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorConflict):
		status, msg = http.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, common.ErrAchievementNotFound):
		status, msg = http.StatusNotFound, msgAchievementMissing
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, notFound
		if msg == "" {
			msg = err.Error()
		}
	case errors.Is(err, common.ErrVersionConflict):
		status, msg = http.StatusConflict, "Concurrent update, please retry"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, err.Error()
	}

	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}
