package services

import (
	"context"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

const recommendationLimit = 10

// RecommendationCatalog is the slice of the catalog client the recommender
// needs.
type RecommendationCatalog interface {
	DiscoverByGenre(ctx context.Context, genreID, page int) (*models.TMDBPaginatedTVShows, error)
	PopularShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error)
	TVGenres(ctx context.Context) ([]models.TMDBGenre, error)
}

// RecommendationService suggests shows from the catalog based on the user's
// preferred genres, excluding anything already on their watchlist.
type RecommendationService struct {
	store   storage.Store
	catalog RecommendationCatalog
	logger  *logrus.Logger
}

func NewRecommendationService(store storage.Store, catalog RecommendationCatalog, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Recommendations picks one of the user's preferred genres at random and
// discovers shows in it, falling back to the popular list when the user has
// no genre preferences or the preference has no catalog counterpart.
func (s *RecommendationService) Recommendations(ctx context.Context, userID int) ([]ShowSummary, error) {
	userGenres, err := s.store.UserGenres(ctx, userID)
	if err != nil {
		return nil, err
	}
	watchlist, err := s.store.UserWatchlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalogGenres, err := s.catalog.TVGenres(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Catalog genre list unavailable for recommendations")
		catalogGenres = nil
	}
	genreNames := make(map[int]string, len(catalogGenres))
	for _, genre := range catalogGenres {
		genreNames[genre.ID] = genre.Name
	}

	var page *models.TMDBPaginatedTVShows
	if genreID, ok := s.pickGenre(userGenres, catalogGenres); ok {
		page, err = s.catalog.DiscoverByGenre(ctx, genreID, 1)
	} else {
		page, err = s.catalog.PopularShows(ctx)
	}
	if err != nil {
		return nil, err
	}

	results := page.Results
	if len(results) > recommendationLimit {
		results = results[:recommendationLimit]
	}

	onWatchlist := make(map[int]bool, len(watchlist))
	for _, show := range watchlist {
		if show.TMDBID != nil {
			onWatchlist[*show.TMDBID] = true
		}
	}

	summaries := make([]ShowSummary, 0, len(results))
	for _, show := range results {
		if onWatchlist[show.ID] {
			continue
		}
		summaries = append(summaries, SummarizeShow(show, genreNames))
	}
	return summaries, nil
}

// pickGenre chooses one preferred genre at random and resolves it to a
// catalog genre ID by name. Stored genre names are shorter than the
// catalog's compound names ("Sci-Fi" vs "Sci-Fi & Fantasy"), so a
// case-insensitive containment match is used.
func (s *RecommendationService) pickGenre(preferred []models.Genre, catalogGenres []models.TMDBGenre) (int, bool) {
	if len(preferred) == 0 || len(catalogGenres) == 0 {
		return 0, false
	}
	chosen := preferred[rand.Intn(len(preferred))]
	want := strings.ToLower(chosen.Name)
	for _, genre := range catalogGenres {
		if strings.Contains(strings.ToLower(genre.Name), want) {
			return genre.ID, true
		}
	}
	s.logger.WithField("genre", chosen.Name).Debug("Preferred genre has no catalog counterpart")
	return 0, false
}
