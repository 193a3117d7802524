package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/services"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// HistoryHandler manages the append-only watch history. Submitted shows are
// reconciled to internal records before recording; a show the user watched
// twice appears twice.
type HistoryHandler struct {
	Store    storage.Store
	Resolver *services.ShowResolver
	Logger   *logrus.Logger
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	history, err := h.Store.UserWatchHistory(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch watch history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *HistoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req struct {
		Shows []models.ShowInput `json:"shows"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	for _, input := range req.Shows {
		show, err := h.Resolver.ResolveOrCreateShow(r.Context(), input)
		if err != nil {
			respondError(w, h.Logger, err, "Failed to update watch history")
			return
		}
		if _, err := h.Store.AddToWatchHistory(r.Context(), userID, show.ID); err != nil {
			respondError(w, h.Logger, err, "Failed to update watch history")
			return
		}
	}

	history, err := h.Store.UserWatchHistory(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch watch history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Remove deletes every history entry for the show. The path ID may be a
// catalog ID or an internal show ID; catalog IDs win when both match.
func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	showID, err := strconv.Atoi(r.PathValue("showId"))
	if err != nil {
		JSONError(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	internalID := h.Resolver.ResolveStoredShowID(r.Context(), showID)
	if err := h.Store.RemoveFromWatchHistory(r.Context(), userID, internalID); err != nil {
		respondError(w, h.Logger, err, "Failed to remove from watch history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
