package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// PreferencesHandler manages the user's streaming-service and genre
// selections. Both POST endpoints are full replacements: the previous
// selection is cleared and the submitted IDs become the new set. IDs that
// reference no known service or genre are skipped.
type PreferencesHandler struct {
	Store  storage.Store
	Logger *logrus.Logger
}

// ListAllStreamingServices returns the selectable service catalog, used to
// render the onboarding picker.
func (h *PreferencesHandler) ListAllStreamingServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Store.StreamingServices(r.Context())
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch streaming services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *PreferencesHandler) ListStreamingServices(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	services, err := h.Store.UserStreamingServices(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch streaming services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *PreferencesHandler) ReplaceStreamingServices(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req struct {
		ServiceIDs []int `json:"serviceIds"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Store.DeleteUserStreamingServices(r.Context(), userID); err != nil {
		respondError(w, h.Logger, err, "Failed to update streaming services")
		return
	}
	for _, serviceID := range req.ServiceIDs {
		if _, err := h.Store.AddUserStreamingService(r.Context(), userID, serviceID); err != nil {
			h.Logger.WithError(err).WithField("serviceId", serviceID).Warn("Skipping unknown streaming service")
		}
	}

	services, err := h.Store.UserStreamingServices(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch streaming services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *PreferencesHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	genres, err := h.Store.UserGenres(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch genres")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *PreferencesHandler) ReplaceGenres(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req struct {
		GenreIDs []int `json:"genreIds"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Store.DeleteUserGenres(r.Context(), userID); err != nil {
		respondError(w, h.Logger, err, "Failed to update genres")
		return
	}
	for _, genreID := range req.GenreIDs {
		if _, err := h.Store.AddUserGenre(r.Context(), userID, genreID); err != nil {
			h.Logger.WithError(err).WithField("genreId", genreID).Warn("Skipping unknown genre")
		}
	}

	genres, err := h.Store.UserGenres(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch genres")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}
