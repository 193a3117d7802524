package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/auth"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

type AuthHandler struct {
	Store  storage.Store
	Logger *logrus.Logger
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the user record and an access token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		JSONError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetUserByUsername(r.Context(), req.Username); err == nil {
		JSONError(w, "Username is already taken", http.StatusConflict)
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		respondError(w, h.Logger, err, "Failed to register user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to register user")
		return
	}

	user, err := h.Store.CreateUser(r.Context(), models.User{
		Username: req.Username,
		Password: hash,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if errors.Is(err, apperrors.ErrInvalidInput) {
		// Lost the race between the availability check and the insert.
		JSONError(w, "Username is already taken", http.StatusConflict)
		return
	}
	if err != nil {
		respondError(w, h.Logger, err, "Failed to register user")
		return
	}

	// New accounts start with default settings so the settings endpoints
	// never 404 for a fresh user.
	if _, err := h.Store.CreateUserSettings(r.Context(), models.UserSettings{
		UserID:             user.ID,
		EmailNotifications: true,
		DarkMode:           true,
		ShareData:          true,
	}); err != nil {
		h.Logger.WithError(err).WithField("userId", user.ID).Warn("Failed to create default settings")
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to generate token")
		return
	}

	h.Logger.WithField("userId", user.ID).Info("User registered")
	writeJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			JSONError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		respondError(w, h.Logger, err, "Failed to log in")
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.Password)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to log in")
		return
	}
	if !match {
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}
