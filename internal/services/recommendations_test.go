package services

import (
	"context"
	"testing"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

type recsCatalog struct {
	discovered      []models.TMDBTVShow
	popular         []models.TMDBTVShow
	genres          []models.TMDBGenre
	discoverGenreID int
	popularCalls    int
}

func (c *recsCatalog) DiscoverByGenre(_ context.Context, genreID, _ int) (*models.TMDBPaginatedTVShows, error) {
	c.discoverGenreID = genreID
	return &models.TMDBPaginatedTVShows{Results: c.discovered}, nil
}

func (c *recsCatalog) PopularShows(_ context.Context) (*models.TMDBPaginatedTVShows, error) {
	c.popularCalls++
	return &models.TMDBPaginatedTVShows{Results: c.popular}, nil
}

func (c *recsCatalog) TVGenres(_ context.Context) ([]models.TMDBGenre, error) {
	return c.genres, nil
}

func TestRecommendationsUsePreferredGenre(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	user, err := store.CreateUser(ctx, models.User{Username: "alice", Password: "hashed"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	// Seeded genre 1 is Drama; its catalog counterpart is id 18.
	if _, err := store.AddUserGenre(ctx, user.ID, 1); err != nil {
		t.Fatalf("AddUserGenre failed: %v", err)
	}

	cat := &recsCatalog{
		genres: []models.TMDBGenre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}},
		discovered: []models.TMDBTVShow{
			{ID: 100, Name: "Dark", GenreIDs: []int{18}, VoteAverage: 8.4, FirstAirDate: "2017-12-01"},
		},
	}
	service := NewRecommendationService(store, cat, testLogger())

	recs, err := service.Recommendations(ctx, user.ID)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if cat.discoverGenreID != 18 {
		t.Errorf("expected discovery by catalog genre 18, got %d", cat.discoverGenreID)
	}
	if len(recs) != 1 || recs[0].Title != "Dark" {
		t.Fatalf("unexpected recommendations: %v", recs)
	}
	if recs[0].Year != "2017" || recs[0].Rating != "8.4" {
		t.Errorf("expected normalized display fields, got year %q rating %q", recs[0].Year, recs[0].Rating)
	}
	if len(recs[0].Genres) != 1 || recs[0].Genres[0] != "Drama" {
		t.Errorf("expected resolved genre names, got %v", recs[0].Genres)
	}
}

func TestRecommendationsFallBackToPopular(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	user, err := store.CreateUser(ctx, models.User{Username: "alice", Password: "hashed"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	cat := &recsCatalog{
		genres:  []models.TMDBGenre{{ID: 18, Name: "Drama"}},
		popular: []models.TMDBTVShow{{ID: 200, Name: "Severance"}},
	}
	service := NewRecommendationService(store, cat, testLogger())

	recs, err := service.Recommendations(ctx, user.ID)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if cat.popularCalls != 1 {
		t.Errorf("expected the popular list to be used, got %d calls", cat.popularCalls)
	}
	if len(recs) != 1 || recs[0].Title != "Severance" {
		t.Fatalf("unexpected recommendations: %v", recs)
	}
}

func TestRecommendationsExcludeWatchlistShows(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	user, err := store.CreateUser(ctx, models.User{Username: "alice", Password: "hashed"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	tmdbID := 100
	onList, err := store.CreateShow(ctx, models.NewShow{TMDBID: &tmdbID, Title: "Dark"})
	if err != nil {
		t.Fatalf("CreateShow failed: %v", err)
	}
	if _, err := store.AddToWatchlist(ctx, user.ID, onList.ID); err != nil {
		t.Fatalf("AddToWatchlist failed: %v", err)
	}

	cat := &recsCatalog{
		popular: []models.TMDBTVShow{
			{ID: 100, Name: "Dark"},
			{ID: 200, Name: "Severance"},
		},
	}
	service := NewRecommendationService(store, cat, testLogger())

	recs, err := service.Recommendations(ctx, user.ID)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != 200 {
		t.Fatalf("expected the watchlisted show to be filtered out, got %v", recs)
	}
}
