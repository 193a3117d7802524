package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/services"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// WatchlistHandler manages the user's save-for-later set. Adds are
// reconciled then idempotent per (user, show).
type WatchlistHandler struct {
	Store    storage.Store
	Resolver *services.ShowResolver
	Logger   *logrus.Logger
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	watchlist, err := h.Store.UserWatchlist(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch watchlist")
		return
	}
	writeJSON(w, http.StatusOK, watchlist)
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req models.ShowInput
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.Resolver.ResolveOrCreateShow(r.Context(), req)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to add to watchlist")
		return
	}

	entry, err := h.Store.AddToWatchlist(r.Context(), userID, show.ID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to add to watchlist")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Remove is a no-op for shows not on the list. The path ID may be a catalog
// ID or an internal show ID; catalog IDs win when both match.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	showID, err := strconv.Atoi(r.PathValue("showId"))
	if err != nil {
		JSONError(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	internalID := h.Resolver.ResolveStoredShowID(r.Context(), showID)
	if err := h.Store.RemoveFromWatchlist(r.Context(), userID, internalID); err != nil {
		respondError(w, h.Logger, err, "Failed to remove from watchlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
