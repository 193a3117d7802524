package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/auth"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

type contextKey string

const UserIDKey contextKey = "userID"

type Middleware struct {
	Store  storage.Store
	Logger *logrus.Logger
}

// Auth validates the bearer token, verifies the user still exists, and
// stashes the user ID in the request context. The existence check covers
// clients holding a valid token for a wiped database.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			JSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			JSONError(w, "Invalid authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			JSONError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if _, err := m.Store.GetUser(r.Context(), claims.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				JSONError(w, "User not found", http.StatusUnauthorized)
				return
			}
			m.Logger.WithError(err).WithField("userId", claims.UserID).Error("Auth middleware user lookup failed")
			JSONError(w, "Database error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stashes the user ID when a valid bearer token is present but
// never rejects the request. Used by endpoints that serve anonymous callers
// with reduced personalization.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := auth.ValidateToken(parts[1]); err == nil {
				if _, err := m.Store.GetUser(r.Context(), claims.UserID); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), UserIDKey, claims.UserID))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID reads the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	return userID, ok
}
