package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

type pairKey struct {
	userID int
	showID int
}

// MemoryStore is a process-local Store used for development and tests. It is
// a stand-in for the relational store: the composite-key maps play the role
// of unique indexes, and the counters replace serial columns. Not meant for
// multi-process deployments.
type MemoryStore struct {
	mu sync.Mutex

	users        map[int]models.User
	usersByName  map[string]int
	services     map[int]models.StreamingService
	genres       map[int]models.Genre
	shows        map[int]models.Show
	showsByTMDB  map[int]int
	showsByTitle map[string]int

	userServices map[pairKey]models.UserStreamingService
	userGenres   map[pairKey]models.UserGenre
	watchlist    map[pairKey]models.WatchlistEntry
	watchOrder   []pairKey
	history      []models.WatchHistoryEntry
	insights     map[int]models.PersonalityInsight
	settings     map[int]models.UserSettings

	userIDSeq      int
	showIDSeq      int
	userServiceSeq int
	userGenreSeq   int
	historySeq     int
	watchlistSeq   int
	insightSeq     int
	settingsSeq    int
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:        make(map[int]models.User),
		usersByName:  make(map[string]int),
		services:     make(map[int]models.StreamingService),
		genres:       make(map[int]models.Genre),
		shows:        make(map[int]models.Show),
		showsByTMDB:  make(map[int]int),
		showsByTitle: make(map[string]int),
		userServices: make(map[pairKey]models.UserStreamingService),
		userGenres:   make(map[pairKey]models.UserGenre),
		watchlist:    make(map[pairKey]models.WatchlistEntry),
		insights:     make(map[int]models.PersonalityInsight),
		settings:     make(map[int]models.UserSettings),
	}

	for _, service := range seedStreamingServices {
		s.services[service.ID] = service
	}
	for _, genre := range seedGenres {
		s.genres[genre.ID] = genre
	}

	return s
}

// Users

func (s *MemoryStore) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[user.Username]; exists {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrInvalidInput, user.Username)
	}

	s.userIDSeq++
	user.ID = s.userIDSeq
	user.JoinDate = time.Now()
	s.users[user.ID] = user
	s.usersByName[user.Username] = user.ID
	return &user, nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, id int, update UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	s.users[id] = user
	return &user, nil
}

// Streaming services

func (s *MemoryStore) StreamingServices(_ context.Context) ([]models.StreamingService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	services := make([]models.StreamingService, 0, len(s.services))
	for _, seeded := range seedStreamingServices {
		if service, ok := s.services[seeded.ID]; ok {
			services = append(services, service)
		}
	}
	return services, nil
}

func (s *MemoryStore) UserStreamingServices(_ context.Context, userID int) ([]models.StreamingService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var services []models.StreamingService
	for _, link := range s.userServices {
		if link.UserID != userID {
			continue
		}
		if service, ok := s.services[link.StreamingServiceID]; ok {
			services = append(services, service)
		}
	}
	return services, nil
}

func (s *MemoryStore) AddUserStreamingService(_ context.Context, userID, serviceID int) (*models.UserStreamingService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[serviceID]; !ok {
		return nil, fmt.Errorf("streaming service %d: %w", serviceID, apperrors.ErrNotFound)
	}

	s.userServiceSeq++
	link := models.UserStreamingService{
		ID:                 s.userServiceSeq,
		UserID:             userID,
		StreamingServiceID: serviceID,
	}
	s.userServices[pairKey{userID, serviceID}] = link
	return &link, nil
}

func (s *MemoryStore) DeleteUserStreamingServices(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.userServices {
		if key.userID == userID {
			delete(s.userServices, key)
		}
	}
	return nil
}

// Genres

func (s *MemoryStore) Genres(_ context.Context) ([]models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	genres := make([]models.Genre, 0, len(s.genres))
	for _, seeded := range seedGenres {
		if genre, ok := s.genres[seeded.ID]; ok {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (s *MemoryStore) UserGenres(_ context.Context, userID int) ([]models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var genres []models.Genre
	for _, link := range s.userGenres {
		if link.UserID != userID {
			continue
		}
		if genre, ok := s.genres[link.GenreID]; ok {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (s *MemoryStore) AddUserGenre(_ context.Context, userID, genreID int) (*models.UserGenre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.genres[genreID]; !ok {
		return nil, fmt.Errorf("genre %d: %w", genreID, apperrors.ErrNotFound)
	}

	s.userGenreSeq++
	link := models.UserGenre{
		ID:      s.userGenreSeq,
		UserID:  userID,
		GenreID: genreID,
	}
	s.userGenres[pairKey{userID, genreID}] = link
	return &link, nil
}

func (s *MemoryStore) DeleteUserGenres(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.userGenres {
		if key.userID == userID {
			delete(s.userGenres, key)
		}
	}
	return nil
}

// Shows

func (s *MemoryStore) GetShow(_ context.Context, id int) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getShowLocked(id)
}

func (s *MemoryStore) getShowLocked(id int) (*models.Show, error) {
	show, ok := s.shows[id]
	if !ok {
		return nil, fmt.Errorf("show %d: %w", id, apperrors.ErrNotFound)
	}
	return &show, nil
}

func (s *MemoryStore) GetShowByTitle(_ context.Context, title string) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.showsByTitle[strings.ToLower(title)]
	if !ok {
		return nil, fmt.Errorf("show %q: %w", title, apperrors.ErrNotFound)
	}
	show := s.shows[id]
	return &show, nil
}

func (s *MemoryStore) GetShowByTMDBID(_ context.Context, tmdbID int) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.showsByTMDB[tmdbID]
	if !ok {
		return nil, fmt.Errorf("show tmdb=%d: %w", tmdbID, apperrors.ErrNotFound)
	}
	show := s.shows[id]
	return &show, nil
}

func (s *MemoryStore) CreateShow(_ context.Context, newShow models.NewShow) (*models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newShow.TMDBID != nil {
		// Same contract as the tmdb_id unique index in Postgres: a
		// conflicting create returns the existing record.
		if id, ok := s.showsByTMDB[*newShow.TMDBID]; ok {
			existing := s.shows[id]
			return &existing, nil
		}
	}

	s.showIDSeq++
	show := models.Show{
		ID:                 s.showIDSeq,
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
	s.shows[show.ID] = show

	if show.TMDBID != nil {
		s.showsByTMDB[*show.TMDBID] = show.ID
	}
	// First record wins the title index, matching lookup-by-title returning
	// the earliest matching show.
	titleKey := strings.ToLower(show.Title)
	if _, taken := s.showsByTitle[titleKey]; !taken {
		s.showsByTitle[titleKey] = show.ID
	}

	return &show, nil
}

// Watch history

func (s *MemoryStore) UserWatchHistory(_ context.Context, userID int) ([]models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shows []models.Show
	for _, entry := range s.history {
		if entry.UserID != userID {
			continue
		}
		if show, ok := s.shows[entry.ShowID]; ok {
			shows = append(shows, show)
		}
	}
	return shows, nil
}

func (s *MemoryStore) AddToWatchHistory(_ context.Context, userID, showID int) (*models.WatchHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getShowLocked(showID); err != nil {
		return nil, err
	}

	s.historySeq++
	entry := models.WatchHistoryEntry{
		ID:          s.historySeq,
		UserID:      userID,
		ShowID:      showID,
		DateWatched: time.Now(),
	}
	s.history = append(s.history, entry)
	return &entry, nil
}

func (s *MemoryStore) RemoveFromWatchHistory(_ context.Context, userID, showID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.history[:0]
	for _, entry := range s.history {
		if entry.UserID == userID && entry.ShowID == showID {
			continue
		}
		kept = append(kept, entry)
	}
	s.history = kept
	return nil
}

// Watchlist

func (s *MemoryStore) UserWatchlist(_ context.Context, userID int) ([]models.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shows []models.Show
	for _, key := range s.watchOrder {
		entry, ok := s.watchlist[key]
		if !ok || entry.UserID != userID {
			continue
		}
		if show, ok := s.shows[entry.ShowID]; ok {
			shows = append(shows, show)
		}
	}
	return shows, nil
}

func (s *MemoryStore) AddToWatchlist(_ context.Context, userID, showID int) (*models.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID, showID}
	if existing, ok := s.watchlist[key]; ok {
		return &existing, nil
	}

	if _, err := s.getShowLocked(showID); err != nil {
		return nil, err
	}

	s.watchlistSeq++
	entry := models.WatchlistEntry{
		ID:        s.watchlistSeq,
		UserID:    userID,
		ShowID:    showID,
		DateAdded: time.Now(),
	}
	s.watchlist[key] = entry
	s.watchOrder = append(s.watchOrder, key)
	return &entry, nil
}

func (s *MemoryStore) RemoveFromWatchlist(_ context.Context, userID, showID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID, showID}
	if _, ok := s.watchlist[key]; !ok {
		return nil
	}
	delete(s.watchlist, key)
	// Drop the order slot too, or a later re-add would list the show twice.
	for i, k := range s.watchOrder {
		if k == key {
			s.watchOrder = append(s.watchOrder[:i], s.watchOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Personality insights

func (s *MemoryStore) GetUserInsight(_ context.Context, userID int) (*models.PersonalityInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insight, ok := s.insights[userID]
	if !ok {
		return nil, fmt.Errorf("insight for user %d: %w", userID, apperrors.ErrNotFound)
	}
	return &insight, nil
}

func (s *MemoryStore) SaveUserInsight(_ context.Context, userID int, viewerType string, characteristics, themes []string) (*models.PersonalityInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insight, ok := s.insights[userID]
	if !ok {
		s.insightSeq++
		insight = models.PersonalityInsight{ID: s.insightSeq, UserID: userID}
	}
	insight.ViewerType = viewerType
	insight.Characteristics = characteristics
	insight.Themes = themes
	insight.UpdatedAt = time.Now()
	s.insights[userID] = insight
	return &insight, nil
}

// Settings

func (s *MemoryStore) GetUserSettings(_ context.Context, userID int) (*models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, fmt.Errorf("settings for user %d: %w", userID, apperrors.ErrNotFound)
	}
	return &settings, nil
}

func (s *MemoryStore) CreateUserSettings(_ context.Context, settings models.UserSettings) (*models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.settings[settings.UserID]; ok {
		settings.ID = existing.ID
	} else {
		s.settingsSeq++
		settings.ID = s.settingsSeq
	}
	s.settings[settings.UserID] = settings
	return &settings, nil
}

func (s *MemoryStore) UpdateUserSettings(_ context.Context, userID int, patch models.SettingsPatch) (*models.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, fmt.Errorf("settings for user %d: %w", userID, apperrors.ErrNotFound)
	}
	if patch.EmailNotifications != nil {
		settings.EmailNotifications = *patch.EmailNotifications
	}
	if patch.DarkMode != nil {
		settings.DarkMode = *patch.DarkMode
	}
	if patch.ShareData != nil {
		settings.ShareData = *patch.ShareData
	}
	s.settings[userID] = settings
	return &settings, nil
}
