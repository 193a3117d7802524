package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/auth"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/services"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeCatalog implements the catalog interfaces the handlers and services
// consume, serving canned data.
type fakeCatalog struct {
	details map[int]*models.TMDBTVShowDetails
	shows   []models.TMDBTVShow
	genres  []models.TMDBGenre
}

func (c *fakeCatalog) ShowDetails(_ context.Context, tmdbID int) (*models.TMDBTVShowDetails, error) {
	details, ok := c.details[tmdbID]
	if !ok {
		return nil, fmt.Errorf("%w: show %d", apperrors.ErrExternalService, tmdbID)
	}
	return details, nil
}

func (c *fakeCatalog) SearchShows(_ context.Context, _ string, page int) (*models.TMDBPaginatedTVShows, error) {
	return &models.TMDBPaginatedTVShows{Page: page, Results: c.shows, TotalPages: 1, TotalResults: len(c.shows)}, nil
}

func (c *fakeCatalog) DiscoverByGenre(_ context.Context, _, page int) (*models.TMDBPaginatedTVShows, error) {
	return &models.TMDBPaginatedTVShows{Page: page, Results: c.shows, TotalPages: 1, TotalResults: len(c.shows)}, nil
}

func (c *fakeCatalog) TrendingShows(_ context.Context) (*models.TMDBPaginatedTVShows, error) {
	return &models.TMDBPaginatedTVShows{Results: c.shows}, nil
}

func (c *fakeCatalog) TopRatedShows(_ context.Context) (*models.TMDBPaginatedTVShows, error) {
	return &models.TMDBPaginatedTVShows{Results: c.shows}, nil
}

func (c *fakeCatalog) PopularShows(_ context.Context) (*models.TMDBPaginatedTVShows, error) {
	return &models.TMDBPaginatedTVShows{Results: c.shows}, nil
}

func (c *fakeCatalog) TVGenres(_ context.Context) ([]models.TMDBGenre, error) {
	return c.genres, nil
}

type testEnv struct {
	store   *storage.MemoryStore
	catalog *fakeCatalog
	mux     *http.ServeMux
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	auth.Init("test-secret")

	store := storage.NewMemoryStore()
	cat := &fakeCatalog{
		details: make(map[int]*models.TMDBTVShowDetails),
		genres:  []models.TMDBGenre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}},
	}
	log := testLogger()
	resolver := services.NewShowResolver(store, cat, log)

	api := &API{
		Middleware:      &Middleware{Store: store, Logger: log},
		Auth:            &AuthHandler{Store: store, Logger: log},
		Preferences:     &PreferencesHandler{Store: store, Logger: log},
		History:         &HistoryHandler{Store: store, Resolver: resolver, Logger: log},
		Watchlist:       &WatchlistHandler{Store: store, Resolver: resolver, Logger: log},
		Settings:        &SettingsHandler{Store: store, Logger: log},
		Profile:         &ProfileHandler{Store: store, Logger: log},
		Shows:           &ShowsHandler{Catalog: cat, Store: store, Logger: log},
		Genres:          &GenresHandler{Catalog: cat, Logger: log},
		Insights:        &InsightsHandler{Insights: services.NewInsightService(store, cat, log), Logger: log},
		Recommendations: &RecommendationsHandler{Recommendations: services.NewRecommendationService(store, cat, log), Logger: log},
	}

	return &testEnv{store: store, catalog: cat, mux: api.Routes()}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) registerUser(t *testing.T, username string) string {
	t.Helper()
	rr := e.do(t, "POST", "/api/register", "", map[string]string{
		"username": username,
		"password": "secret123",
		"fullName": "Test User",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", rr.Code, rr.Body.String())
	}
	var resp AuthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in register response")
	}
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupAPI(t)

	env.registerUser(t, "alice")

	// Registration creates default settings.
	user, err := env.store.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user was not created: %v", err)
	}
	settings, err := env.store.GetUserSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("default settings were not created: %v", err)
	}
	if !settings.EmailNotifications || !settings.DarkMode || !settings.ShareData {
		t.Errorf("unexpected default settings: %+v", settings)
	}

	// Duplicate username is rejected.
	rr := env.do(t, "POST", "/api/register", "", map[string]string{"username": "alice", "password": "other"})
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", rr.Code)
	}

	// Login round-trip.
	rr = env.do(t, "POST", "/api/login", "", map[string]string{"username": "alice", "password": "secret123"})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed with status %d", rr.Code)
	}

	rr = env.do(t, "POST", "/api/login", "", map[string]string{"username": "alice", "password": "wrong"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rr.Code)
	}
}

// racingStore hides an existing user from the availability check so the
// insert itself hits the username conflict.
type racingStore struct {
	storage.Store
}

func (s *racingStore) GetUserByUsername(_ context.Context, _ string) (*models.User, error) {
	return nil, apperrors.ErrNotFound
}

func TestRegisterConflictOnCreateRace(t *testing.T) {
	auth.Init("test-secret")
	store := storage.NewMemoryStore()
	if _, err := store.CreateUser(context.Background(), models.User{Username: "alice", Password: "hashed"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	handler := &AuthHandler{Store: &racingStore{Store: store}, Logger: testLogger()}

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret123"})
	req := httptest.NewRequest("POST", "/api/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 when the insert loses the race, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupAPI(t)

	rr := env.do(t, "GET", "/api/watchlist", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rr.Code)
	}

	rr = env.do(t, "GET", "/api/watchlist", "not-a-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with bad token, got %d", rr.Code)
	}
}

func TestWatchlistFlow(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	env.catalog.details[100] = &models.TMDBTVShowDetails{
		ID:           100,
		Name:         "Dark",
		FirstAirDate: "2017-12-01",
		VoteAverage:  8.4,
		Genres:       []models.TMDBGenre{{ID: 18, Name: "Drama"}},
	}

	rr := env.do(t, "POST", "/api/watchlist", token, map[string]any{"id": 100})
	if rr.Code != http.StatusCreated {
		t.Fatalf("watchlist add failed with status %d: %s", rr.Code, rr.Body.String())
	}

	// Adding the same catalog show again returns the existing entry.
	rr = env.do(t, "POST", "/api/watchlist", token, map[string]any{"id": 100})
	if rr.Code != http.StatusCreated {
		t.Fatalf("repeat watchlist add failed with status %d", rr.Code)
	}

	rr = env.do(t, "GET", "/api/watchlist", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("watchlist list failed with status %d", rr.Code)
	}
	var shows []models.Show
	if err := json.NewDecoder(rr.Body).Decode(&shows); err != nil {
		t.Fatalf("failed to decode watchlist: %v", err)
	}
	if len(shows) != 1 || shows[0].Title != "Dark" {
		t.Fatalf("unexpected watchlist contents: %v", shows)
	}

	// Removal by catalog ID.
	rr = env.do(t, "DELETE", "/api/watchlist/100", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("watchlist remove failed with status %d", rr.Code)
	}
	rr = env.do(t, "GET", "/api/watchlist", token, nil)
	shows = nil
	if err := json.NewDecoder(rr.Body).Decode(&shows); err != nil {
		t.Fatalf("failed to decode watchlist: %v", err)
	}
	if len(shows) != 0 {
		t.Errorf("expected empty watchlist after removal, got %v", shows)
	}
}

func TestWatchHistoryBatch(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	// One catalog-backed show and one manual title; the catalog has no data
	// for either, so both degrade to records built from client fields.
	rr := env.do(t, "POST", "/api/user/watch-history", token, map[string]any{
		"shows": []map[string]any{
			{"id": 300, "title": "Dark"},
			{"title": "Some Local Show"},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("history add failed with status %d: %s", rr.Code, rr.Body.String())
	}

	var history []models.Show
	if err := json.NewDecoder(rr.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}

	// An entry with neither id nor title fails the whole batch.
	rr = env.do(t, "POST", "/api/user/watch-history", token, map[string]any{
		"shows": []map[string]any{{}},
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty show reference, got %d", rr.Code)
	}
}

func TestPreferencesReplace(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	rr := env.do(t, "POST", "/api/user/genres", token, map[string]any{"genreIds": []int{1, 2}})
	if rr.Code != http.StatusOK {
		t.Fatalf("genre replace failed with status %d", rr.Code)
	}

	rr = env.do(t, "POST", "/api/user/genres", token, map[string]any{"genreIds": []int{3}})
	if rr.Code != http.StatusOK {
		t.Fatalf("second genre replace failed with status %d", rr.Code)
	}
	var genres []models.Genre
	if err := json.NewDecoder(rr.Body).Decode(&genres); err != nil {
		t.Fatalf("failed to decode genres: %v", err)
	}
	if len(genres) != 1 || genres[0].ID != 3 {
		t.Errorf("expected replacement to leave only genre 3, got %v", genres)
	}
}

func TestInsightsInsufficientDataPayload(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	rr := env.do(t, "GET", "/api/insights", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 below the threshold, got %d", rr.Code)
	}
	var resp insufficientDataResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if resp.Current != 0 || resp.Minimum != services.MinimumShowsForInsights {
		t.Errorf("unexpected progress payload: %+v", resp)
	}
}

func TestSearchRequiresQueryOrGenre(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	rr := env.do(t, "GET", "/api/shows/search", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without filters, got %d", rr.Code)
	}

	env.catalog.shows = []models.TMDBTVShow{
		{ID: 1, Name: "Dark", GenreIDs: []int{18}},
		{ID: 2, Name: "Friends", GenreIDs: []int{35}},
	}

	rr = env.do(t, "GET", "/api/shows/search?genre=18", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("genre search failed with status %d", rr.Code)
	}
	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode search response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Dark" {
		t.Errorf("expected only the Drama show, got %v", resp.Results)
	}
	if resp.Results[0].PrimaryGenre != "Drama" {
		t.Errorf("expected primary genre Drama, got %q", resp.Results[0].PrimaryGenre)
	}
}

func TestShowDetailReportsWatchlistMembership(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	env.catalog.details[100] = &models.TMDBTVShowDetails{
		ID:          100,
		Name:        "Dark",
		VoteAverage: 8.4,
	}
	if rr := env.do(t, "POST", "/api/watchlist", token, map[string]any{"id": 100}); rr.Code != http.StatusCreated {
		t.Fatalf("watchlist add failed with status %d", rr.Code)
	}

	rr := env.do(t, "GET", "/api/shows/100", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("show detail failed with status %d", rr.Code)
	}
	var detail ShowDetailResponse
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if !detail.InWatchlist {
		t.Error("expected inWatchlist to be true for the authenticated owner")
	}

	// Anonymous callers still get the detail page, without membership.
	rr = env.do(t, "GET", "/api/shows/100", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("anonymous show detail failed with status %d", rr.Code)
	}
	detail = ShowDetailResponse{}
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if detail.InWatchlist {
		t.Error("expected inWatchlist to be false for anonymous callers")
	}
}

func TestProfileCounts(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	env.catalog.details[100] = &models.TMDBTVShowDetails{ID: 100, Name: "Dark"}
	if rr := env.do(t, "POST", "/api/watchlist", token, map[string]any{"id": 100}); rr.Code != http.StatusCreated {
		t.Fatalf("watchlist add failed with status %d", rr.Code)
	}
	if rr := env.do(t, "POST", "/api/user/streaming-services", token, map[string]any{"serviceIds": []int{1}}); rr.Code != http.StatusOK {
		t.Fatalf("service replace failed with status %d", rr.Code)
	}

	rr := env.do(t, "GET", "/api/user/profile", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("profile failed with status %d", rr.Code)
	}
	var profile ProfileResponse
	if err := json.NewDecoder(rr.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.WatchlistCount != 1 || profile.WatchedCount != 0 {
		t.Errorf("unexpected counts: watchlist %d watched %d", profile.WatchlistCount, profile.WatchedCount)
	}
	if !profile.HasCompletedOnboarding {
		t.Error("expected onboarding to be complete after selecting a service")
	}
}

func TestProfileUpdatePatchesOnlyPresentFields(t *testing.T) {
	env := setupAPI(t)
	token := env.registerUser(t, "alice")

	rr := env.do(t, "PATCH", "/api/user/profile", token, map[string]any{"fullName": "Alice Example"})
	if rr.Code != http.StatusOK {
		t.Fatalf("profile update failed with status %d: %s", rr.Code, rr.Body.String())
	}
	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	if user.FullName != "Alice Example" {
		t.Errorf("expected updated full name, got %q", user.FullName)
	}
	if user.Username != "alice" {
		t.Errorf("expected username to be untouched, got %q", user.Username)
	}
}
