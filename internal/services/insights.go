package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// MinimumShowsForInsights is how many combined watchlist + history shows a
// user needs before the aggregator produces a result.
const MinimumShowsForInsights = 5

// GenreSource supplies the catalog's genre reference list.
type GenreSource interface {
	TVGenres(ctx context.Context) ([]models.TMDBGenre, error)
}

// Insights is the basic viewer-type summary.
type Insights struct {
	ViewerType                string   `json:"viewerType"`
	ViewerDescription         string   `json:"viewerDescription"`
	CharacterDrivenPercentage int      `json:"characterDrivenPercentage"`
	PreferredShowTypes        string   `json:"preferredShowTypes"`
	Themes                    []string `json:"themes"`
	ThemeDescription          string   `json:"themeDescription"`
}

// GenreShare is one slice of the genre breakdown.
type GenreShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// ViewingPatterns compares the user against peer and global figures. These
// numbers are presentation-only illustrations, not derived from real peer
// data, so most are randomized within a plausible range.
type ViewingPatterns struct {
	AverageEpisodesPerWeek         int  `json:"averageEpisodesPerWeek"`
	FriendsAverageEpisodesPerWeek  int  `json:"friendsAverageEpisodesPerWeek"`
	AllUsersAverageEpisodesPerWeek int  `json:"allUsersAverageEpisodesPerWeek"`
	CompletionRate                 int  `json:"completionRate"`
	FriendsCompletionRate          int  `json:"friendsCompletionRate"`
	AllUsersCompletionRate         int  `json:"allUsersCompletionRate"`
	DiversityScore                 int  `json:"diversityScore"`
	FriendsDiversityScore          int  `json:"friendsDiversityScore"`
	AllUsersDiversityScore         int  `json:"allUsersDiversityScore"`
	NightOwl                       bool `json:"nightOwl"`
	BingePercentage                int  `json:"bingePercentage"`
	FriendsBingePercentage         int  `json:"friendsBingePercentage"`
	AllUsersBingePercentage        int  `json:"allUsersBingePercentage"`
}

// DetailedInsights extends the basic summary with a genre breakdown,
// character affinities and comparison metrics.
type DetailedInsights struct {
	ViewerType        string              `json:"viewerType"`
	ViewerDescription string              `json:"viewerDescription"`
	Themes            []string            `json:"themes"`
	RelatedInterests  []string            `json:"relatedInterests"`
	GenreBreakdown    []GenreShare        `json:"genreBreakdown"`
	ViewingPatterns   ViewingPatterns     `json:"viewingPatterns"`
	CharacterAffinity []CharacterAffinity `json:"characterAffinity"`
	CharacterInsight  string              `json:"characterInsight"`
}

// InsightService classifies a user's taste from the genre distribution of
// their combined watchlist and watch history. Pure read-side computation,
// recomputed on every request.
type InsightService struct {
	store  storage.Store
	genres GenreSource
	logger *logrus.Logger
}

func NewInsightService(store storage.Store, genres GenreSource, logger *logrus.Logger) *InsightService {
	return &InsightService{
		store:  store,
		genres: genres,
		logger: logger,
	}
}

// genreTally is the frequency histogram over genre names, with the order
// names were first encountered preserved for stable tie-breaking.
type genreTally struct {
	counts map[string]int
	order  []string
	total  int
}

func (t *genreTally) add(name string) {
	if _, seen := t.counts[name]; !seen {
		t.order = append(t.order, name)
	}
	t.counts[name]++
	t.total++
}

// primary returns the most frequent genre name; ties go to the name
// encountered first during aggregation.
func (t *genreTally) primary() string {
	best := ""
	bestCount := 0
	for _, name := range t.order {
		if t.counts[name] > bestCount {
			best = name
			bestCount = t.counts[name]
		}
	}
	return best
}

func (t *genreTally) percentage(name string) int {
	if t.total == 0 {
		return 0
	}
	return int(float64(t.counts[name])/float64(t.total)*100 + 0.5)
}

func (s *InsightService) aggregate(ctx context.Context, userID int) (*genreTally, error) {
	history, err := s.store.UserWatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	watchlist, err := s.store.UserWatchlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	combined := make([]models.Show, 0, len(history)+len(watchlist))
	combined = append(combined, history...)
	combined = append(combined, watchlist...)

	if len(combined) < MinimumShowsForInsights {
		return nil, &apperrors.InsufficientDataError{
			Current: len(combined),
			Minimum: MinimumShowsForInsights,
		}
	}

	names := s.genreNames(ctx)
	tally := &genreTally{counts: make(map[string]int)}
	for _, show := range combined {
		for _, genreID := range show.GenreIDs {
			name, ok := names[genreID]
			if !ok {
				// Unmapped genre IDs are dropped, not bucketed.
				continue
			}
			tally.add(name)
		}
	}
	return tally, nil
}

// genreNames maps genre IDs to display names, preferring the catalog's list
// and falling back to locally stored genres when the catalog is unavailable.
func (s *InsightService) genreNames(ctx context.Context) map[int]string {
	names := make(map[int]string)
	catalogGenres, err := s.genres.TVGenres(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Catalog genre list unavailable, falling back to stored genres")
		stored, storeErr := s.store.Genres(ctx)
		if storeErr != nil {
			s.logger.WithError(storeErr).Error("Failed to load stored genres")
			return names
		}
		for _, genre := range stored {
			names[genre.ID] = genre.Name
		}
		return names
	}
	for _, genre := range catalogGenres {
		names[genre.ID] = genre.Name
	}
	return names
}

// BasicInsights computes the viewer-type summary and persists it to the
// denormalized insight projection. Reads never consult the projection.
func (s *InsightService) BasicInsights(ctx context.Context, userID int) (*Insights, error) {
	tally, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	primary := tally.primary()
	profile := profileFor(primary)

	insights := &Insights{
		ViewerType:                profile.ViewerType,
		ViewerDescription:         profile.Description,
		CharacterDrivenPercentage: 50 + rand.Intn(31),
		PreferredShowTypes:        fmt.Sprintf("%s with strong character development", strings.ToLower(primary)),
		Themes:                    profile.Themes,
		ThemeDescription:          "Your viewing history suggests you're drawn to content that resonates with these themes.",
	}

	if _, err := s.store.SaveUserInsight(ctx, userID, profile.ViewerType, characteristicTypes(profile), profile.Themes); err != nil {
		s.logger.WithError(err).Warn("Failed to persist insight projection")
	}

	return insights, nil
}

// DetailedInsights computes the full report: breakdown, affinities and the
// illustrative comparison metrics.
func (s *InsightService) DetailedInsights(ctx context.Context, userID int) (*DetailedInsights, error) {
	tally, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	primary := tally.primary()
	profile := profileFor(primary)

	breakdown := make([]GenreShare, 0, len(tally.order))
	for _, name := range tally.order {
		breakdown = append(breakdown, GenreShare{Name: name, Percentage: tally.percentage(name)})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Percentage > breakdown[j].Percentage
	})
	if len(breakdown) > 5 {
		breakdown = breakdown[:5]
	}
	if len(breakdown) < 5 {
		sum := 0
		for _, share := range breakdown {
			sum += share.Percentage
		}
		if sum < 100 {
			breakdown = append(breakdown, GenreShare{Name: "Other", Percentage: 100 - sum})
		}
	}

	characterInsight := fmt.Sprintf(
		"Your preference for %s shows suggests you value %s and %s in the stories you watch. The character types you connect with reflect an appreciation for complexity and depth in storytelling.",
		primary, strings.ToLower(profile.Themes[0]), strings.ToLower(profile.Themes[1]),
	)

	return &DetailedInsights{
		ViewerType:        profile.ViewerType,
		ViewerDescription: profile.Description,
		Themes:            profile.Themes,
		RelatedInterests:  profile.RelatedInterests,
		GenreBreakdown:    breakdown,
		ViewingPatterns:   illustrativePatterns(),
		CharacterAffinity: profile.CharacterTypes,
		CharacterInsight:  characterInsight,
	}, nil
}

func characteristicTypes(profile ViewerProfile) []string {
	types := make([]string, 0, len(profile.CharacterTypes))
	for _, affinity := range profile.CharacterTypes {
		types = append(types, affinity.Type)
	}
	return types
}

func illustrativePatterns() ViewingPatterns {
	return ViewingPatterns{
		AverageEpisodesPerWeek:         3 + rand.Intn(8),
		FriendsAverageEpisodesPerWeek:  3 + rand.Intn(8),
		AllUsersAverageEpisodesPerWeek: 5,
		CompletionRate:                 60 + rand.Intn(31),
		FriendsCompletionRate:          60 + rand.Intn(31),
		AllUsersCompletionRate:         73,
		DiversityScore:                 60 + rand.Intn(31),
		FriendsDiversityScore:          60 + rand.Intn(31),
		AllUsersDiversityScore:         68,
		NightOwl:                       rand.Intn(2) == 1,
		BingePercentage:                30 + rand.Intn(41),
		FriendsBingePercentage:         30 + rand.Intn(41),
		AllUsersBingePercentage:        55,
	}
}
