package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/mini-social-be/internal/apperrors"
	"github.com/rs/zerolog/log"
)

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError maps a store error onto its HTTP status and standard body.
func respondError(w http.ResponseWriter, err error) {
	httpErr := apperrors.MapToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	respondJSON(w, httpErr.StatusCode, httpErr.ToErrorResponse())
}
