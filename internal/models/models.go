package models

import "time"

type User struct {
	ID        int       `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	AvatarURL string    `json:"avatarUrl" db:"avatar_url"`
	JoinDate  time.Time `json:"joinDate" db:"join_date"`
}

type StreamingService struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	LogoURL string `json:"logoUrl" db:"logo_url"`
}

type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Show is an internally owned content record. TMDBID is nil for shows created
// purely from user input (e.g. a manually typed watch-history title); once
// set it is never changed.
type Show struct {
	ID                 int    `json:"id" db:"id"`
	TMDBID             *int   `json:"tmdbId" db:"tmdb_id"`
	Title              string `json:"title" db:"title"`
	PosterURL          string `json:"posterUrl" db:"poster_url"`
	BackdropURL        string `json:"backdropUrl" db:"backdrop_url"`
	Overview           string `json:"overview" db:"overview"`
	Year               string `json:"year" db:"year"`
	Rating             string `json:"rating" db:"rating"`
	GenreIDs           []int  `json:"genreIds" db:"genre_ids"`
	StreamingServiceID *int   `json:"streamingServiceId" db:"streaming_service_id"`
}

// NewShow carries the fields for creating a Show; the store assigns the ID.
type NewShow struct {
	TMDBID             *int
	Title              string
	PosterURL          string
	BackdropURL        string
	Overview           string
	Year               string
	Rating             string
	GenreIDs           []int
	StreamingServiceID *int
}

// ShowInput is the one canonical shape the API layer normalizes client-supplied
// show-like objects into, whether they came from the catalog or local storage.
type ShowInput struct {
	TMDBID      int    `json:"id"`
	Title       string `json:"title"`
	PosterURL   string `json:"posterUrl"`
	BackdropURL string `json:"backdropUrl"`
	Overview    string `json:"overview"`
	Year        string `json:"year"`
	Rating      string `json:"rating"`
	GenreIDs    []int  `json:"genreIds"`
}

type UserStreamingService struct {
	ID                 int `json:"id" db:"id"`
	UserID             int `json:"userId" db:"user_id"`
	StreamingServiceID int `json:"streamingServiceId" db:"streaming_service_id"`
}

type UserGenre struct {
	ID      int `json:"id" db:"id"`
	UserID  int `json:"userId" db:"user_id"`
	GenreID int `json:"genreId" db:"genre_id"`
}

type WatchHistoryEntry struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"userId" db:"user_id"`
	ShowID      int       `json:"showId" db:"show_id"`
	DateWatched time.Time `json:"dateWatched" db:"date_watched"`
}

type WatchlistEntry struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	ShowID    int       `json:"showId" db:"show_id"`
	DateAdded time.Time `json:"dateAdded" db:"date_added"`
}

// PersonalityInsight is a denormalized projection of the insight aggregator's
// output. It may be absent until first computed; reads always recompute.
type PersonalityInsight struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"userId" db:"user_id"`
	ViewerType      string    `json:"viewerType" db:"viewer_type"`
	Characteristics []string  `json:"characteristics" db:"characteristics"`
	Themes          []string  `json:"themes" db:"themes"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type UserSettings struct {
	ID                 int  `json:"id" db:"id"`
	UserID             int  `json:"userId" db:"user_id"`
	EmailNotifications bool `json:"emailNotifications" db:"email_notifications"`
	DarkMode           bool `json:"darkMode" db:"dark_mode"`
	ShareData          bool `json:"shareData" db:"share_data"`
}

// SettingsPatch updates only the flags that are present.
type SettingsPatch struct {
	EmailNotifications *bool `json:"emailNotifications"`
	DarkMode           *bool `json:"darkMode"`
	ShareData          *bool `json:"shareData"`
}
