package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/catalog"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/services"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// Catalog is the slice of the catalog client the browse endpoints need.
type Catalog interface {
	ShowDetails(ctx context.Context, tmdbID int) (*models.TMDBTVShowDetails, error)
	SearchShows(ctx context.Context, query string, page int) (*models.TMDBPaginatedTVShows, error)
	DiscoverByGenre(ctx context.Context, genreID, page int) (*models.TMDBPaginatedTVShows, error)
	TrendingShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error)
	TopRatedShows(ctx context.Context) (*models.TMDBPaginatedTVShows, error)
	TVGenres(ctx context.Context) ([]models.TMDBGenre, error)
}

// primaryGenrePriority ranks catalog genres for picking a show's primary
// genre when it carries several. Lower index wins.
var primaryGenrePriority = []int{
	10759, // Action & Adventure
	10765, // Sci-Fi & Fantasy
	9648,  // Mystery
	80,    // Crime
	18,    // Drama
	35,    // Comedy
	10751, // Family
	16,    // Animation
	99,    // Documentary
	10768, // War & Politics
	37,    // Western
}

const browseLimit = 12

// ShowsHandler serves the catalog browse surface: trending and acclaimed
// rails, search, and the full show detail page.
type ShowsHandler struct {
	Catalog Catalog
	Store   storage.Store
	Logger  *logrus.Logger
}

// SearchResult decorates a summary with the show's primary genre.
type SearchResult struct {
	services.ShowSummary
	PrimaryGenre string `json:"primaryGenre"`
}

// SearchResponse is the paginated search envelope.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
}

func (h *ShowsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	h.rail(w, r, h.Catalog.TrendingShows, true)
}

func (h *ShowsHandler) Acclaimed(w http.ResponseWriter, r *http.Request) {
	h.rail(w, r, h.Catalog.TopRatedShows, false)
}

func (h *ShowsHandler) rail(w http.ResponseWriter, r *http.Request, fetch func(context.Context) (*models.TMDBPaginatedTVShows, error), trending bool) {
	page, err := fetch(r.Context())
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch shows")
		return
	}

	results := page.Results
	if len(results) > browseLimit {
		results = results[:browseLimit]
	}
	summaries := make([]services.ShowSummary, 0, len(results))
	for _, show := range results {
		summary := services.SummarizeShow(show, nil)
		summary.Trending = trending
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Search serves keyword search and genre browsing. A genre filter takes
// precedence over a keyword; one of the two is required.
func (h *ShowsHandler) Search(w http.ResponseWriter, r *http.Request) {
	// Search results change as the catalog updates, so keep proxies from
	// serving stale pages.
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	query := r.URL.Query().Get("q")
	genreParam := r.URL.Query().Get("genre")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	if genreParam != "" && genreParam != "all" {
		genreID, err := strconv.Atoi(genreParam)
		if err != nil {
			JSONError(w, "Invalid genre filter", http.StatusBadRequest)
			return
		}
		h.searchByGenre(w, r, genreID, page)
		return
	}
	if query == "" {
		JSONError(w, "A search query or genre filter is required", http.StatusBadRequest)
		return
	}
	h.searchByQuery(w, r, query, page)
}

func (h *ShowsHandler) searchByGenre(w http.ResponseWriter, r *http.Request, genreID, page int) {
	response, err := h.Catalog.DiscoverByGenre(r.Context(), genreID, page)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to search shows")
		return
	}
	genreNames := h.genreNames(r.Context())

	// The discover endpoint can drift; only keep shows actually carrying
	// the requested genre.
	results := make([]SearchResult, 0, len(response.Results))
	for _, show := range response.Results {
		if !containsInt(show.GenreIDs, genreID) {
			continue
		}
		results = append(results, SearchResult{
			ShowSummary:  services.SummarizeShow(show, genreNames),
			PrimaryGenre: genreNames[genreID],
		})
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results:      results,
		Page:         page,
		TotalPages:   response.TotalPages,
		TotalResults: len(results),
	})
}

func (h *ShowsHandler) searchByQuery(w http.ResponseWriter, r *http.Request, query string, page int) {
	response, err := h.Catalog.SearchShows(r.Context(), query, page)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to search shows")
		return
	}
	genreNames := h.genreNames(r.Context())

	results := make([]SearchResult, 0, len(response.Results))
	for _, show := range response.Results {
		results = append(results, SearchResult{
			ShowSummary:  services.SummarizeShow(show, genreNames),
			PrimaryGenre: primaryGenreName(show.GenreIDs, genreNames),
		})
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results:      results,
		Page:         page,
		TotalPages:   response.TotalPages,
		TotalResults: response.TotalResults,
	})
}

func (h *ShowsHandler) genreNames(ctx context.Context) map[int]string {
	names := make(map[int]string)
	genres, err := h.Catalog.TVGenres(ctx)
	if err != nil {
		h.Logger.WithError(err).Warn("Failed to fetch catalog genre list")
		return names
	}
	for _, genre := range genres {
		names[genre.ID] = genre.Name
	}
	return names
}

// primaryGenreName picks the show's primary genre: the highest-priority
// genre it carries, else its first genre, else "Unknown".
func primaryGenreName(genreIDs []int, genreNames map[int]string) string {
	if len(genreIDs) == 0 {
		return "Unknown"
	}
	primaryID := -1
	for _, priorityID := range primaryGenrePriority {
		if containsInt(genreIDs, priorityID) {
			primaryID = priorityID
			break
		}
	}
	if primaryID == -1 {
		primaryID = genreIDs[0]
	}
	if name, ok := genreNames[primaryID]; ok {
		return name
	}
	return "Unknown"
}

func formatRating(voteAverage float64) string {
	return fmt.Sprintf("%.1f", voteAverage)
}

func orEmptyProviders(providers []models.TMDBProvider) []models.TMDBProvider {
	if providers == nil {
		return []models.TMDBProvider{}
	}
	return providers
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// Detail response types, shaped for the show page.

type NetworkInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type CastMemberInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profileUrl"`
}

type SimilarShowInfo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl"`
	Year      string `json:"year"`
	Rating    string `json:"rating"`
}

type VideoInfo struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type WatchProvidersInfo struct {
	Link     string                `json:"link"`
	Flatrate []models.TMDBProvider `json:"flatrate"`
	Rent     []models.TMDBProvider `json:"rent"`
	Buy      []models.TMDBProvider `json:"buy"`
}

type ShowDetailResponse struct {
	ID             int                 `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	PosterURL      string              `json:"posterUrl"`
	BackdropURL    string              `json:"backdropUrl"`
	Year           string              `json:"year"`
	Genres         []string            `json:"genres"`
	Episodes       int                 `json:"episodes"`
	Seasons        int                 `json:"seasons"`
	Runtime        int                 `json:"runtime"`
	Rating         string              `json:"rating"`
	Status         string              `json:"status"`
	Networks       []NetworkInfo       `json:"networks"`
	Creator        string              `json:"creator"`
	Cast           []CastMemberInfo    `json:"cast"`
	Similar        []SimilarShowInfo   `json:"similar"`
	Videos         []VideoInfo         `json:"videos"`
	WatchProviders *WatchProvidersInfo `json:"watchProviders"`
	InWatchlist    bool                `json:"inWatchlist"`
}

func (h *ShowsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		JSONError(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	show, err := h.Catalog.ShowDetails(r.Context(), tmdbID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch show")
		return
	}

	writeJSON(w, http.StatusOK, h.buildDetail(r, show, tmdbID))
}

func (h *ShowsHandler) buildDetail(r *http.Request, show *models.TMDBTVShowDetails, tmdbID int) ShowDetailResponse {
	genres := make([]string, 0, len(show.Genres))
	for _, g := range show.Genres {
		genres = append(genres, g.Name)
	}

	runtime := 0
	if len(show.EpisodeRunTime) > 0 {
		runtime = show.EpisodeRunTime[0]
	}

	networks := make([]NetworkInfo, 0, len(show.Networks))
	for _, n := range show.Networks {
		networks = append(networks, NetworkInfo{
			ID:      n.ID,
			Name:    n.Name,
			LogoURL: catalog.ProfileURL(n.LogoPath),
		})
	}

	creator := "Unknown"
	if len(show.CreatedBy) > 0 {
		creator = show.CreatedBy[0].Name
	}

	cast := show.Credits.Cast
	if len(cast) > 10 {
		cast = cast[:10]
	}
	castInfo := make([]CastMemberInfo, 0, len(cast))
	for _, c := range cast {
		castInfo = append(castInfo, CastMemberInfo{
			ID:         c.ID,
			Name:       c.Name,
			Character:  c.Character,
			ProfileURL: catalog.ProfileURL(c.ProfilePath),
		})
	}

	similarShows := show.Similar.Results
	if len(similarShows) > 8 {
		similarShows = similarShows[:8]
	}
	similar := make([]SimilarShowInfo, 0, len(similarShows))
	for _, s := range similarShows {
		year := "Unknown"
		if len(s.FirstAirDate) >= 4 {
			year = s.FirstAirDate[:4]
		}
		similar = append(similar, SimilarShowInfo{
			ID:        s.ID,
			Title:     s.Name,
			PosterURL: catalog.ProfileURL(s.PosterPath),
			Year:      year,
			Rating:    formatRating(s.VoteAverage),
		})
	}

	videos := make([]VideoInfo, 0, 3)
	for _, v := range show.Videos.Results {
		if v.Site != "YouTube" || (v.Type != "Trailer" && v.Type != "Teaser") {
			continue
		}
		videos = append(videos, VideoInfo{ID: v.ID, Key: v.Key, Name: v.Name, Type: v.Type})
		if len(videos) == 3 {
			break
		}
	}

	var providers *WatchProvidersInfo
	if us, ok := show.WatchProviders.Results["US"]; ok {
		providers = &WatchProvidersInfo{
			Link:     us.Link,
			Flatrate: orEmptyProviders(us.Flatrate),
			Rent:     orEmptyProviders(us.Rent),
			Buy:      orEmptyProviders(us.Buy),
		}
	}

	return ShowDetailResponse{
		ID:             show.ID,
		Title:          show.Name,
		Description:    show.Overview,
		PosterURL:      catalog.PosterURL(show.PosterPath),
		BackdropURL:    catalog.BackdropURL(show.BackdropPath),
		Year:           show.Year(),
		Genres:         genres,
		Episodes:       show.NumberOfEpisodes,
		Seasons:        show.NumberOfSeasons,
		Runtime:        runtime,
		Rating:         formatRating(show.VoteAverage),
		Status:         show.Status,
		Networks:       networks,
		Creator:        creator,
		Cast:           castInfo,
		Similar:        similar,
		Videos:         videos,
		WatchProviders: providers,
		InWatchlist:    h.inWatchlist(r, tmdbID),
	}
}

// inWatchlist reports whether the authenticated user has the show on their
// watchlist. The detail endpoint also serves unauthenticated callers, for
// whom this is always false.
func (h *ShowsHandler) inWatchlist(r *http.Request, tmdbID int) bool {
	userID, ok := GetUserID(r)
	if !ok {
		return false
	}
	stored, err := h.Store.GetShowByTMDBID(r.Context(), tmdbID)
	if err != nil {
		return false
	}
	watchlist, err := h.Store.UserWatchlist(r.Context(), userID)
	if err != nil {
		return false
	}
	for _, item := range watchlist {
		if item.ID == stored.ID {
			return true
		}
	}
	return false
}
