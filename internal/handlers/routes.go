package handlers

import "net/http"

// API aggregates the route handlers and middleware for mounting.
type API struct {
	Middleware      *Middleware
	Auth            *AuthHandler
	Preferences     *PreferencesHandler
	History         *HistoryHandler
	Watchlist       *WatchlistHandler
	Settings        *SettingsHandler
	Profile         *ProfileHandler
	Shows           *ShowsHandler
	Genres          *GenresHandler
	Insights        *InsightsHandler
	Recommendations *RecommendationsHandler
}

// Routes mounts every endpoint on a fresh ServeMux. Literal patterns take
// precedence over the /api/shows/{id} wildcard, so the browse rails stay
// reachable.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.Handler {
		return a.Middleware.Auth(h)
	}

	// Public
	mux.HandleFunc("POST /api/register", a.Auth.Register)
	mux.HandleFunc("POST /api/login", a.Auth.Login)
	mux.Handle("GET /api/shows/{id}", a.Middleware.OptionalAuth(http.HandlerFunc(a.Shows.Detail)))

	// Preferences
	mux.Handle("GET /api/streaming-services", protected(a.Preferences.ListAllStreamingServices))
	mux.Handle("GET /api/user/streaming-services", protected(a.Preferences.ListStreamingServices))
	mux.Handle("POST /api/user/streaming-services", protected(a.Preferences.ReplaceStreamingServices))
	mux.Handle("GET /api/user/genres", protected(a.Preferences.ListGenres))
	mux.Handle("POST /api/user/genres", protected(a.Preferences.ReplaceGenres))

	// Library
	mux.Handle("GET /api/user/watch-history", protected(a.History.List))
	mux.Handle("POST /api/user/watch-history", protected(a.History.Add))
	mux.Handle("DELETE /api/user/watch-history/{showId}", protected(a.History.Remove))
	mux.Handle("GET /api/watchlist", protected(a.Watchlist.List))
	mux.Handle("POST /api/watchlist", protected(a.Watchlist.Add))
	mux.Handle("DELETE /api/watchlist/{showId}", protected(a.Watchlist.Remove))

	// Account
	mux.Handle("GET /api/user/settings", protected(a.Settings.Get))
	mux.Handle("POST /api/user/settings", protected(a.Settings.Create))
	mux.Handle("PATCH /api/user/settings", protected(a.Settings.Patch))
	mux.Handle("GET /api/user/profile", protected(a.Profile.Get))
	mux.Handle("PATCH /api/user/profile", protected(a.Profile.Update))

	// Catalog browse
	mux.Handle("GET /api/shows/trending", protected(a.Shows.Trending))
	mux.Handle("GET /api/shows/acclaimed", protected(a.Shows.Acclaimed))
	mux.Handle("GET /api/shows/search", protected(a.Shows.Search))
	mux.Handle("GET /api/genres", protected(a.Genres.List))

	// Personalization
	mux.Handle("GET /api/recommendations", protected(a.Recommendations.List))
	mux.Handle("GET /api/insights", protected(a.Insights.Basic))
	mux.Handle("GET /api/insights/detailed", protected(a.Insights.Detailed))

	return mux
}
