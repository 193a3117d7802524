package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

func createTestUser(t *testing.T, store *MemoryStore, username string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), models.User{
		Username: username,
		Password: "hashed",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func createTestShow(t *testing.T, store *MemoryStore, title string, tmdbID int) *models.Show {
	t.Helper()
	newShow := models.NewShow{Title: title}
	if tmdbID > 0 {
		newShow.TMDBID = &tmdbID
	}
	show, err := store.CreateShow(context.Background(), newShow)
	if err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}
	return show
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	store := NewMemoryStore()
	createTestUser(t, store, "alice")

	_, err := store.CreateUser(context.Background(), models.User{Username: "alice"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestGetShowRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	created := createTestShow(t, store, "Dark", 70523)

	found, err := store.GetShow(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if found.Title != "Dark" || found.TMDBID == nil || *found.TMDBID != 70523 {
		t.Errorf("unexpected show returned: %+v", found)
	}

	if _, err := store.GetShow(context.Background(), 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateShowReturnsExistingOnExternalIDConflict(t *testing.T) {
	store := NewMemoryStore()
	first := createTestShow(t, store, "Dark", 70523)

	tmdbID := 70523
	second, err := store.CreateShow(context.Background(), models.NewShow{Title: "Dark (duplicate)", TMDBID: &tmdbID})
	if err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected existing show %d, got new show %d", first.ID, second.ID)
	}
	if second.Title != "Dark" {
		t.Errorf("expected existing record's title, got %q", second.Title)
	}
}

func TestGetShowByTitleIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	created := createTestShow(t, store, "Breaking Bad", 0)

	found, err := store.GetShowByTitle(context.Background(), "breaking bad")
	if err != nil {
		t.Fatalf("GetShowByTitle failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected show %d, got %d", created.ID, found.ID)
	}
}

func TestGetShowByTitleReturnsEarliestMatch(t *testing.T) {
	store := NewMemoryStore()
	first := createTestShow(t, store, "The Office", 0)
	createTestShow(t, store, "The Office", 100)

	found, err := store.GetShowByTitle(context.Background(), "The Office")
	if err != nil {
		t.Fatalf("GetShowByTitle failed: %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("expected earliest show %d, got %d", first.ID, found.ID)
	}
}

func TestAddToWatchlistIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	show := createTestShow(t, store, "Dark", 70523)

	first, err := store.AddToWatchlist(context.Background(), user.ID, show.ID)
	if err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}
	second, err := store.AddToWatchlist(context.Background(), user.ID, show.ID)
	if err != nil {
		t.Fatalf("repeat AddToWatchlist failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the existing entry back, got entry %d then %d", first.ID, second.ID)
	}

	watchlist, err := store.UserWatchlist(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("UserWatchlist failed: %v", err)
	}
	if len(watchlist) != 1 {
		t.Errorf("expected 1 watchlist show, got %d", len(watchlist))
	}
}

func TestAddToWatchlistRequiresExistingShow(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")

	_, err := store.AddToWatchlist(context.Background(), user.ID, 999)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestReAddAfterRemoveKeepsWatchlistUnique(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	show := createTestShow(t, store, "Severance", 95396)
	ctx := context.Background()

	if _, err := store.AddToWatchlist(ctx, user.ID, show.ID); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}
	if err := store.RemoveFromWatchlist(ctx, user.ID, show.ID); err != nil {
		t.Fatalf("RemoveFromWatchlist failed: %v", err)
	}
	if _, err := store.AddToWatchlist(ctx, user.ID, show.ID); err != nil {
		t.Fatalf("second AddToWatchlist failed: %v", err)
	}

	shows, err := store.UserWatchlist(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserWatchlist failed: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("expected 1 watchlist show after add-remove-add, got %d", len(shows))
	}
}

func TestRemoveFromWatchlistIsNoOpWhenAbsent(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")

	if err := store.RemoveFromWatchlist(context.Background(), user.ID, 999); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestWatchHistoryKeepsRewatches(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	show := createTestShow(t, store, "Dark", 70523)

	for i := 0; i < 3; i++ {
		if _, err := store.AddToWatchHistory(context.Background(), user.ID, show.ID); err != nil {
			t.Fatalf("AddToWatchHistory failed: %v", err)
		}
	}

	history, err := store.UserWatchHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("UserWatchHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(history))
	}
}

func TestRemoveFromWatchHistoryDeletesAllEntries(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	rewatched := createTestShow(t, store, "Dark", 70523)
	kept := createTestShow(t, store, "Severance", 95396)

	for i := 0; i < 2; i++ {
		if _, err := store.AddToWatchHistory(context.Background(), user.ID, rewatched.ID); err != nil {
			t.Fatalf("AddToWatchHistory failed: %v", err)
		}
	}
	if _, err := store.AddToWatchHistory(context.Background(), user.ID, kept.ID); err != nil {
		t.Fatalf("AddToWatchHistory failed: %v", err)
	}

	if err := store.RemoveFromWatchHistory(context.Background(), user.ID, rewatched.ID); err != nil {
		t.Fatalf("RemoveFromWatchHistory failed: %v", err)
	}

	history, err := store.UserWatchHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("UserWatchHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", len(history))
	}
	if history[0].ID != kept.ID {
		t.Errorf("expected show %d to remain, got %d", kept.ID, history[0].ID)
	}
}

func TestPreferenceReplacement(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	ctx := context.Background()

	for _, serviceID := range []int{1, 2} {
		if _, err := store.AddUserStreamingService(ctx, user.ID, serviceID); err != nil {
			t.Fatalf("AddUserStreamingService failed: %v", err)
		}
	}
	if err := store.DeleteUserStreamingServices(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUserStreamingServices failed: %v", err)
	}
	if _, err := store.AddUserStreamingService(ctx, user.ID, 3); err != nil {
		t.Fatalf("AddUserStreamingService failed: %v", err)
	}

	services, err := store.UserStreamingServices(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserStreamingServices failed: %v", err)
	}
	if len(services) != 1 || services[0].ID != 3 {
		t.Errorf("expected only service 3 after replacement, got %v", services)
	}
}

func TestAddUserGenreRejectsUnknownGenre(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")

	_, err := store.AddUserGenre(context.Background(), user.ID, 42)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSaveUserInsightOverwrites(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	ctx := context.Background()

	first, err := store.SaveUserInsight(ctx, user.ID, "Comedy Enthusiast", []string{"The Free Spirit"}, []string{"Humor"})
	if err != nil {
		t.Fatalf("SaveUserInsight failed: %v", err)
	}
	second, err := store.SaveUserInsight(ctx, user.ID, "Character-driven Explorer", []string{"The Complex Antihero"}, []string{"Human relationships"})
	if err != nil {
		t.Fatalf("repeat SaveUserInsight failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the projection row to be reused, got id %d then %d", first.ID, second.ID)
	}

	insight, err := store.GetUserInsight(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserInsight failed: %v", err)
	}
	if insight.ViewerType != "Character-driven Explorer" {
		t.Errorf("expected overwritten viewer type, got %q", insight.ViewerType)
	}
}

func TestUpdateUserSettingsPatchesOnlyPresentFields(t *testing.T) {
	store := NewMemoryStore()
	user := createTestUser(t, store, "alice")
	ctx := context.Background()

	if _, err := store.CreateUserSettings(ctx, models.UserSettings{
		UserID:             user.ID,
		EmailNotifications: true,
		DarkMode:           true,
		ShareData:          true,
	}); err != nil {
		t.Fatalf("CreateUserSettings failed: %v", err)
	}

	darkMode := false
	settings, err := store.UpdateUserSettings(ctx, user.ID, models.SettingsPatch{DarkMode: &darkMode})
	if err != nil {
		t.Fatalf("UpdateUserSettings failed: %v", err)
	}
	if settings.DarkMode {
		t.Error("expected dark mode to be disabled")
	}
	if !settings.EmailNotifications || !settings.ShareData {
		t.Error("expected untouched fields to keep their values")
	}
}
