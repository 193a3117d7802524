package storage

import (
	"context"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

// UserUpdate patches the mutable profile fields; nil fields are left alone.
type UserUpdate struct {
	FullName  *string
	Email     *string
	AvatarURL *string
}

// Store owns all user-scoped data plus the internal show catalog. Lookups
// that miss return an error wrapping apperrors.ErrNotFound.
//
// Store implementations must keep these contracts:
//   - AddToWatchlist is idempotent per (user, show) and returns the existing
//     entry unchanged on repeat calls.
//   - AddToWatchHistory always appends; re-watches produce multiple entries.
//   - RemoveFromWatchHistory deletes every entry for the (user, show) pair.
//   - Removing an absent watchlist entry is a no-op.
//   - The list operations resolve join rows to Show records and skip entries
//     whose show is missing instead of erroring.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int, update UserUpdate) (*models.User, error)

	// Streaming services
	StreamingServices(ctx context.Context) ([]models.StreamingService, error)
	UserStreamingServices(ctx context.Context, userID int) ([]models.StreamingService, error)
	AddUserStreamingService(ctx context.Context, userID, serviceID int) (*models.UserStreamingService, error)
	DeleteUserStreamingServices(ctx context.Context, userID int) error

	// Genres
	Genres(ctx context.Context) ([]models.Genre, error)
	UserGenres(ctx context.Context, userID int) ([]models.Genre, error)
	AddUserGenre(ctx context.Context, userID, genreID int) (*models.UserGenre, error)
	DeleteUserGenres(ctx context.Context, userID int) error

	// Shows
	GetShow(ctx context.Context, id int) (*models.Show, error)
	GetShowByTitle(ctx context.Context, title string) (*models.Show, error)
	GetShowByTMDBID(ctx context.Context, tmdbID int) (*models.Show, error)
	CreateShow(ctx context.Context, show models.NewShow) (*models.Show, error)

	// Watch history
	UserWatchHistory(ctx context.Context, userID int) ([]models.Show, error)
	AddToWatchHistory(ctx context.Context, userID, showID int) (*models.WatchHistoryEntry, error)
	RemoveFromWatchHistory(ctx context.Context, userID, showID int) error

	// Watchlist
	UserWatchlist(ctx context.Context, userID int) ([]models.Show, error)
	AddToWatchlist(ctx context.Context, userID, showID int) (*models.WatchlistEntry, error)
	RemoveFromWatchlist(ctx context.Context, userID, showID int) error

	// Personality insights
	GetUserInsight(ctx context.Context, userID int) (*models.PersonalityInsight, error)
	SaveUserInsight(ctx context.Context, userID int, viewerType string, characteristics, themes []string) (*models.PersonalityInsight, error)

	// Settings
	GetUserSettings(ctx context.Context, userID int) (*models.UserSettings, error)
	CreateUserSettings(ctx context.Context, settings models.UserSettings) (*models.UserSettings, error)
	UpdateUserSettings(ctx context.Context, userID int, patch models.SettingsPatch) (*models.UserSettings, error)
}
