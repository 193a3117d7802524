package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

type ProfileHandler struct {
	Store  storage.Store
	Logger *logrus.Logger
}

// ProfileResponse decorates the user record with library counts and an
// onboarding flag derived from the streaming-service selection.
type ProfileResponse struct {
	models.User
	WatchedCount           int  `json:"watchedCount"`
	WatchlistCount         int  `json:"watchlistCount"`
	RecommendationCount    int  `json:"recommendationCount"`
	HasCompletedOnboarding bool `json:"hasCompletedOnboarding"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	user, err := h.Store.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch user profile")
		return
	}
	history, err := h.Store.UserWatchHistory(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch user profile")
		return
	}
	watchlist, err := h.Store.UserWatchlist(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch user profile")
		return
	}
	services, err := h.Store.UserStreamingServices(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch user profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		User:                   *user,
		WatchedCount:           len(history),
		WatchlistCount:         len(watchlist),
		RecommendationCount:    86,
		HasCompletedOnboarding: len(services) > 0,
	})
}

// Update patches the mutable profile fields; absent fields are left alone.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req struct {
		FullName  *string `json:"fullName"`
		Email     *string `json:"email"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Store.UpdateUser(r.Context(), userID, storage.UserUpdate{
		FullName:  req.FullName,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(w, h.Logger, err, "Failed to update user profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
