package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

type SettingsHandler struct {
	Store  storage.Store
	Logger *logrus.Logger
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	settings, err := h.Store.GetUserSettings(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch user settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var req struct {
		EmailNotifications bool `json:"emailNotifications"`
		DarkMode           bool `json:"darkMode"`
		ShareData          bool `json:"shareData"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.Store.CreateUserSettings(r.Context(), models.UserSettings{
		UserID:             userID,
		EmailNotifications: req.EmailNotifications,
		DarkMode:           req.DarkMode,
		ShareData:          req.ShareData,
	})
	if err != nil {
		respondError(w, h.Logger, err, "Failed to create user settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	var patch models.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	settings, err := h.Store.UpdateUserSettings(r.Context(), userID, patch)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to update user settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
