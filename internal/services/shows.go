package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/apperrors"
	"github.com/su-gabriel/ScreenlistApp/internal/catalog"
	"github.com/su-gabriel/ScreenlistApp/internal/models"
	"github.com/su-gabriel/ScreenlistApp/internal/storage"
)

// ShowCatalog is the slice of the catalog client the resolver needs.
type ShowCatalog interface {
	ShowDetails(ctx context.Context, tmdbID int) (*models.TMDBTVShowDetails, error)
}

// ShowResolver maps client-supplied show references onto internal Show
// records. Every write path that takes a show by catalog ID goes through it,
// so the same catalog show never gets two internal records.
type ShowResolver struct {
	store   storage.Store
	catalog ShowCatalog
	logger  *logrus.Logger
}

func NewShowResolver(store storage.Store, cat ShowCatalog, logger *logrus.Logger) *ShowResolver {
	return &ShowResolver{
		store:   store,
		catalog: cat,
		logger:  logger,
	}
}

// ResolveOrCreateShow returns the single internal record for the referenced
// show, creating one if necessary.
//
// Lookup order: stored catalog ID first, then case-insensitive exact title.
// The catalog ID wins because titles are not unique in the real catalog; the
// title fallback exists so a manually typed history entry can be found again.
// When nothing matches, the catalog is consulted for full details; if that
// fetch fails the show is still created from the client-supplied fields
// alone, with no catalog ID. A stored show's catalog ID is never rewritten.
func (r *ShowResolver) ResolveOrCreateShow(ctx context.Context, input models.ShowInput) (*models.Show, error) {
	if input.TMDBID > 0 {
		show, err := r.store.GetShowByTMDBID(ctx, input.TMDBID)
		if err == nil {
			return show, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	title := strings.TrimSpace(input.Title)
	if title != "" {
		show, err := r.store.GetShowByTitle(ctx, title)
		if err == nil {
			return show, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if input.TMDBID <= 0 && title == "" {
		return nil, fmt.Errorf("%w: a show reference needs a catalog id or a title", apperrors.ErrInvalidInput)
	}

	newShow := models.NewShow{
		Title:       title,
		PosterURL:   input.PosterURL,
		BackdropURL: input.BackdropURL,
		Overview:    input.Overview,
		Year:        input.Year,
		Rating:      input.Rating,
		GenreIDs:    input.GenreIDs,
	}

	if input.TMDBID > 0 {
		details, err := r.catalog.ShowDetails(ctx, input.TMDBID)
		if err != nil {
			// Degraded path: keep the client-supplied fields and leave the
			// catalog ID unset rather than failing the whole request.
			r.logger.WithFields(logrus.Fields{
				"tmdb_id": input.TMDBID,
				"error":   err.Error(),
			}).Warn("Catalog fetch failed, creating show from client fields only")
		} else {
			tmdbID := details.ID
			newShow.TMDBID = &tmdbID
			// Client-supplied values win over fetched ones.
			if newShow.Title == "" {
				newShow.Title = details.Name
			}
			if newShow.PosterURL == "" {
				newShow.PosterURL = catalog.PosterURL(details.PosterPath)
			}
			if newShow.BackdropURL == "" {
				newShow.BackdropURL = catalog.BackdropURL(details.BackdropPath)
			}
			if newShow.Overview == "" {
				newShow.Overview = details.Overview
			}
			if newShow.Year == "" {
				newShow.Year = details.Year()
			}
			if newShow.Rating == "" {
				newShow.Rating = fmt.Sprintf("%.1f", details.VoteAverage)
			}
			if len(newShow.GenreIDs) == 0 {
				newShow.GenreIDs = details.GenreIDList()
			}
		}
	}

	if newShow.Title == "" {
		newShow.Title = "Unknown"
	}

	show, err := r.store.CreateShow(ctx, newShow)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"show_id": show.ID,
		"title":   show.Title,
	}).Info("Created show record")
	return show, nil
}

// ResolveStoredShowID maps an ID from a delete request onto an internal show
// ID: catalog IDs are tried first, and an ID with no catalog match is assumed
// to already be internal.
func (r *ShowResolver) ResolveStoredShowID(ctx context.Context, id int) int {
	if show, err := r.store.GetShowByTMDBID(ctx, id); err == nil {
		return show.ID
	}
	return id
}
