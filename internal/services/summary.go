package services

import (
	"fmt"

	"github.com/su-gabriel/ScreenlistApp/internal/catalog"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

// ShowSummary is the API-facing card shape for catalog shows. IDs here are
// catalog (TMDb) IDs, not internal show IDs.
type ShowSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"posterUrl"`
	BackdropURL string   `json:"backdropUrl"`
	Overview    string   `json:"overview"`
	Rating      string   `json:"rating"`
	Year        string   `json:"year"`
	GenreIDs    []int    `json:"genreIds"`
	Genres      []string `json:"genres,omitempty"`
	Trending    bool     `json:"trending,omitempty"`
}

// SummarizeShow normalizes a catalog list entry for display. Genre IDs with
// no entry in genreNames are omitted from the name list; pass nil to skip
// name resolution entirely.
func SummarizeShow(show models.TMDBTVShow, genreNames map[int]string) ShowSummary {
	genres := make([]string, 0, len(show.GenreIDs))
	for _, id := range show.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}

	year := "Unknown"
	if len(show.FirstAirDate) >= 4 {
		year = show.FirstAirDate[:4]
	}

	return ShowSummary{
		ID:          show.ID,
		Title:       show.Name,
		PosterURL:   catalog.PosterURL(show.PosterPath),
		BackdropURL: catalog.BackdropURL(show.BackdropPath),
		Overview:    show.Overview,
		Rating:      fmt.Sprintf("%.1f", show.VoteAverage),
		Year:        year,
		GenreIDs:    show.GenreIDs,
		Genres:      genres,
	}
}

// SummarizeShows maps a result page to summaries, resolving genre names.
func SummarizeShows(shows []models.TMDBTVShow, genreNames map[int]string) []ShowSummary {
	out := make([]ShowSummary, 0, len(shows))
	for _, show := range shows {
		out = append(out, SummarizeShow(show, genreNames))
	}
	return out
}
