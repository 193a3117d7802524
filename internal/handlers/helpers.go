package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// insufficientDataResponse reports progress toward the insight threshold.
type insufficientDataResponse struct {
	Error   string `json:"error"`
	Current int    `json:"current"`
	Minimum int    `json:"minimum"`
}

// JSONError writes a JSON error response.
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// respondError maps domain errors to HTTP statuses. fallback is the message
// used for unclassified errors, which are also logged.
func respondError(w http.ResponseWriter, logger *logrus.Logger, err error, fallback string) {
	if ide, ok := apperrors.AsInsufficientData(err); ok {
		writeJSON(w, http.StatusBadRequest, insufficientDataResponse{
			Error:   "Not enough data",
			Current: ide.Current,
			Minimum: ide.Minimum,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrExternalService):
		JSONError(w, "Upstream catalog unavailable", http.StatusBadGateway)
	default:
		logger.WithError(err).Error(fallback)
		JSONError(w, fallback, http.StatusInternalServerError)
	}
}
