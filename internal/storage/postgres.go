package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore is the production Store over pgx. Uniqueness is enforced by
// the schema: shows(tmdb_id) and watchlist(user_id, show_id) carry unique
// indexes, and inserts treat a conflict as "already exists".
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the schema and seed data. Safe to run on every startup.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Users

const userColumns = "id, username, password, full_name, email, avatar_url, join_date"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.FullName, &user.Email, &user.AvatarURL, &user.JoinDate)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
	INSERT INTO users (username, password, full_name, email)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (username) DO NOTHING
	RETURNING id, join_date
	`
	err := s.db.QueryRow(ctx, query, user.Username, user.Password, user.FullName, user.Email).
		Scan(&user.ID, &user.JoinDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrInvalidInput, user.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int, update UserUpdate) (*models.User, error) {
	query := `
	UPDATE users
	SET full_name = COALESCE($2, full_name),
	    email = COALESCE($3, email),
	    avatar_url = COALESCE($4, avatar_url)
	WHERE id = $1
	RETURNING ` + userColumns
	user, err := scanUser(s.db.QueryRow(ctx, query, id, update.FullName, update.Email, update.AvatarURL))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Streaming services

func (s *PostgresStore) StreamingServices(ctx context.Context) ([]models.StreamingService, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name, logo_url FROM streaming_services ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list streaming services: %w", err)
	}
	defer rows.Close()

	var services []models.StreamingService
	for rows.Next() {
		var service models.StreamingService
		if err := rows.Scan(&service.ID, &service.Name, &service.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan streaming service: %w", err)
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (s *PostgresStore) UserStreamingServices(ctx context.Context, userID int) ([]models.StreamingService, error) {
	query := `
	SELECT ss.id, ss.name, ss.logo_url
	FROM user_streaming_services uss
	JOIN streaming_services ss ON ss.id = uss.streaming_service_id
	WHERE uss.user_id = $1
	ORDER BY uss.id
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user streaming services: %w", err)
	}
	defer rows.Close()

	var services []models.StreamingService
	for rows.Next() {
		var service models.StreamingService
		if err := rows.Scan(&service.ID, &service.Name, &service.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan streaming service: %w", err)
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (s *PostgresStore) AddUserStreamingService(ctx context.Context, userID, serviceID int) (*models.UserStreamingService, error) {
	link := models.UserStreamingService{UserID: userID, StreamingServiceID: serviceID}
	query := `
	INSERT INTO user_streaming_services (user_id, streaming_service_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id, streaming_service_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id
	`
	if err := s.db.QueryRow(ctx, query, userID, serviceID).Scan(&link.ID); err != nil {
		return nil, fmt.Errorf("failed to add user streaming service: %w", err)
	}
	return &link, nil
}

func (s *PostgresStore) DeleteUserStreamingServices(ctx context.Context, userID int) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM user_streaming_services WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete user streaming services: %w", err)
	}
	return nil
}

// Genres

func (s *PostgresStore) Genres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (s *PostgresStore) UserGenres(ctx context.Context, userID int) ([]models.Genre, error) {
	query := `
	SELECT g.id, g.name
	FROM user_genres ug
	JOIN genres g ON g.id = ug.genre_id
	WHERE ug.user_id = $1
	ORDER BY ug.id
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (s *PostgresStore) AddUserGenre(ctx context.Context, userID, genreID int) (*models.UserGenre, error) {
	link := models.UserGenre{UserID: userID, GenreID: genreID}
	query := `
	INSERT INTO user_genres (user_id, genre_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id, genre_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id
	`
	if err := s.db.QueryRow(ctx, query, userID, genreID).Scan(&link.ID); err != nil {
		return nil, fmt.Errorf("failed to add user genre: %w", err)
	}
	return &link, nil
}

func (s *PostgresStore) DeleteUserGenres(ctx context.Context, userID int) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM user_genres WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete user genres: %w", err)
	}
	return nil
}

// Shows

const showColumns = "id, tmdb_id, title, poster_url, backdrop_url, overview, year, rating, genre_ids, streaming_service_id"

func scanShow(row pgx.Row) (*models.Show, error) {
	var show models.Show
	var genreIDs []int32
	err := row.Scan(&show.ID, &show.TMDBID, &show.Title, &show.PosterURL, &show.BackdropURL,
		&show.Overview, &show.Year, &show.Rating, &genreIDs, &show.StreamingServiceID)
	if err != nil {
		return nil, err
	}
	show.GenreIDs = make([]int, len(genreIDs))
	for i, id := range genreIDs {
		show.GenreIDs[i] = int(id)
	}
	return &show, nil
}

func (s *PostgresStore) GetShow(ctx context.Context, id int) (*models.Show, error) {
	show, err := scanShow(s.db.QueryRow(ctx, "SELECT "+showColumns+" FROM shows WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("show %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show: %w", err)
	}
	return show, nil
}

func (s *PostgresStore) GetShowByTitle(ctx context.Context, title string) (*models.Show, error) {
	query := "SELECT " + showColumns + " FROM shows WHERE LOWER(title) = LOWER($1) ORDER BY id LIMIT 1"
	show, err := scanShow(s.db.QueryRow(ctx, query, title))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("show %q: %w", title, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show by title: %w", err)
	}
	return show, nil
}

func (s *PostgresStore) GetShowByTMDBID(ctx context.Context, tmdbID int) (*models.Show, error) {
	show, err := scanShow(s.db.QueryRow(ctx, "SELECT "+showColumns+" FROM shows WHERE tmdb_id = $1", tmdbID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("show tmdb=%d: %w", tmdbID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show by tmdb id: %w", err)
	}
	return show, nil
}

func (s *PostgresStore) CreateShow(ctx context.Context, newShow models.NewShow) (*models.Show, error) {
	genreIDs := make([]int32, len(newShow.GenreIDs))
	for i, id := range newShow.GenreIDs {
		genreIDs[i] = int32(id)
	}

	query := `
	INSERT INTO shows (tmdb_id, title, poster_url, backdrop_url, overview, year, rating, genre_ids, streaming_service_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (tmdb_id) DO NOTHING
	RETURNING id
	`
	show := models.Show{
		TMDBID:             newShow.TMDBID,
		Title:              newShow.Title,
		PosterURL:          newShow.PosterURL,
		BackdropURL:        newShow.BackdropURL,
		Overview:           newShow.Overview,
		Year:               newShow.Year,
		Rating:             newShow.Rating,
		GenreIDs:           newShow.GenreIDs,
		StreamingServiceID: newShow.StreamingServiceID,
	}
	err := s.db.QueryRow(ctx, query, newShow.TMDBID, newShow.Title, newShow.PosterURL, newShow.BackdropURL,
		newShow.Overview, newShow.Year, newShow.Rating, genreIDs, newShow.StreamingServiceID).Scan(&show.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost a race on the tmdb_id unique index: the record already exists.
		return s.GetShowByTMDBID(ctx, *newShow.TMDBID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}
	return &show, nil
}

// Watch history

func (s *PostgresStore) UserWatchHistory(ctx context.Context, userID int) ([]models.Show, error) {
	query := `
	SELECT ` + prefixedShowColumns("s") + `
	FROM watch_history wh
	JOIN shows s ON s.id = wh.show_id
	WHERE wh.user_id = $1
	ORDER BY wh.id
	`
	return s.queryShows(ctx, query, userID)
}

func (s *PostgresStore) AddToWatchHistory(ctx context.Context, userID, showID int) (*models.WatchHistoryEntry, error) {
	if _, err := s.GetShow(ctx, showID); err != nil {
		return nil, err
	}

	entry := models.WatchHistoryEntry{UserID: userID, ShowID: showID}
	query := `
	INSERT INTO watch_history (user_id, show_id)
	VALUES ($1, $2)
	RETURNING id, date_watched
	`
	if err := s.db.QueryRow(ctx, query, userID, showID).Scan(&entry.ID, &entry.DateWatched); err != nil {
		return nil, fmt.Errorf("failed to add to watch history: %w", err)
	}
	return &entry, nil
}

func (s *PostgresStore) RemoveFromWatchHistory(ctx context.Context, userID, showID int) error {
	// Removes every viewing of the show, not just one.
	if _, err := s.db.Exec(ctx, "DELETE FROM watch_history WHERE user_id = $1 AND show_id = $2", userID, showID); err != nil {
		return fmt.Errorf("failed to remove from watch history: %w", err)
	}
	return nil
}

// Watchlist

func (s *PostgresStore) UserWatchlist(ctx context.Context, userID int) ([]models.Show, error) {
	query := `
	SELECT ` + prefixedShowColumns("s") + `
	FROM watchlist wl
	JOIN shows s ON s.id = wl.show_id
	WHERE wl.user_id = $1
	ORDER BY wl.id
	`
	return s.queryShows(ctx, query, userID)
}

func (s *PostgresStore) AddToWatchlist(ctx context.Context, userID, showID int) (*models.WatchlistEntry, error) {
	if _, err := s.GetShow(ctx, showID); err != nil {
		return nil, err
	}

	entry := models.WatchlistEntry{UserID: userID, ShowID: showID}
	query := `
	INSERT INTO watchlist (user_id, show_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id, show_id) DO NOTHING
	RETURNING id, date_added
	`
	err := s.db.QueryRow(ctx, query, userID, showID).Scan(&entry.ID, &entry.DateAdded)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already present; return the existing entry unchanged.
		selectQuery := "SELECT id, user_id, show_id, date_added FROM watchlist WHERE user_id = $1 AND show_id = $2"
		err = s.db.QueryRow(ctx, selectQuery, userID, showID).
			Scan(&entry.ID, &entry.UserID, &entry.ShowID, &entry.DateAdded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return &entry, nil
}

func (s *PostgresStore) RemoveFromWatchlist(ctx context.Context, userID, showID int) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM watchlist WHERE user_id = $1 AND show_id = $2", userID, showID); err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

// Personality insights

func (s *PostgresStore) GetUserInsight(ctx context.Context, userID int) (*models.PersonalityInsight, error) {
	var insight models.PersonalityInsight
	query := "SELECT id, user_id, viewer_type, characteristics, themes, updated_at FROM personality_insights WHERE user_id = $1"
	err := s.db.QueryRow(ctx, query, userID).
		Scan(&insight.ID, &insight.UserID, &insight.ViewerType, &insight.Characteristics, &insight.Themes, &insight.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("insight for user %d: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}
	return &insight, nil
}

func (s *PostgresStore) SaveUserInsight(ctx context.Context, userID int, viewerType string, characteristics, themes []string) (*models.PersonalityInsight, error) {
	insight := models.PersonalityInsight{
		UserID:          userID,
		ViewerType:      viewerType,
		Characteristics: characteristics,
		Themes:          themes,
	}
	query := `
	INSERT INTO personality_insights (user_id, viewer_type, characteristics, themes, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (user_id) DO UPDATE SET
		viewer_type = EXCLUDED.viewer_type,
		characteristics = EXCLUDED.characteristics,
		themes = EXCLUDED.themes,
		updated_at = EXCLUDED.updated_at
	RETURNING id, updated_at
	`
	if err := s.db.QueryRow(ctx, query, userID, viewerType, characteristics, themes).
		Scan(&insight.ID, &insight.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to save insight: %w", err)
	}
	return &insight, nil
}

// Settings

func (s *PostgresStore) GetUserSettings(ctx context.Context, userID int) (*models.UserSettings, error) {
	var settings models.UserSettings
	query := "SELECT id, user_id, email_notifications, dark_mode, share_data FROM user_settings WHERE user_id = $1"
	err := s.db.QueryRow(ctx, query, userID).
		Scan(&settings.ID, &settings.UserID, &settings.EmailNotifications, &settings.DarkMode, &settings.ShareData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settings for user %d: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (s *PostgresStore) CreateUserSettings(ctx context.Context, settings models.UserSettings) (*models.UserSettings, error) {
	query := `
	INSERT INTO user_settings (user_id, email_notifications, dark_mode, share_data)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE SET
		email_notifications = EXCLUDED.email_notifications,
		dark_mode = EXCLUDED.dark_mode,
		share_data = EXCLUDED.share_data
	RETURNING id
	`
	if err := s.db.QueryRow(ctx, query, settings.UserID, settings.EmailNotifications, settings.DarkMode, settings.ShareData).
		Scan(&settings.ID); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return &settings, nil
}

func (s *PostgresStore) UpdateUserSettings(ctx context.Context, userID int, patch models.SettingsPatch) (*models.UserSettings, error) {
	var settings models.UserSettings
	query := `
	UPDATE user_settings
	SET email_notifications = COALESCE($2, email_notifications),
	    dark_mode = COALESCE($3, dark_mode),
	    share_data = COALESCE($4, share_data)
	WHERE user_id = $1
	RETURNING id, user_id, email_notifications, dark_mode, share_data
	`
	err := s.db.QueryRow(ctx, query, userID, patch.EmailNotifications, patch.DarkMode, patch.ShareData).
		Scan(&settings.ID, &settings.UserID, &settings.EmailNotifications, &settings.DarkMode, &settings.ShareData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settings for user %d: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &settings, nil
}

// Helpers

func prefixedShowColumns(alias string) string {
	return alias + ".id, " + alias + ".tmdb_id, " + alias + ".title, " + alias + ".poster_url, " +
		alias + ".backdrop_url, " + alias + ".overview, " + alias + ".year, " + alias + ".rating, " +
		alias + ".genre_ids, " + alias + ".streaming_service_id"
}

func (s *PostgresStore) queryShows(ctx context.Context, query string, args ...any) ([]models.Show, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shows: %w", err)
	}
	defer rows.Close()

	var shows []models.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		shows = append(shows, *show)
	}
	return shows, rows.Err()
}
