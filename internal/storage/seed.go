package storage

import "github.com/su-gabriel/ScreenlistApp/internal/models"

// Reference data seeded at startup. Genre IDs here are internal onboarding
// genres; shows carry catalog genre IDs, which are a separate numbering.
var (
	seedStreamingServices = []models.StreamingService{
		{ID: 1, Name: "Netflix"},
		{ID: 2, Name: "Hulu"},
		{ID: 3, Name: "Disney+"},
		{ID: 4, Name: "HBO Max"},
		{ID: 5, Name: "Prime Video"},
		{ID: 6, Name: "Apple TV+"},
	}

	seedGenres = []models.Genre{
		{ID: 1, Name: "Drama"},
		{ID: 2, Name: "Comedy"},
		{ID: 3, Name: "Sci-Fi"},
		{ID: 4, Name: "Fantasy"},
		{ID: 5, Name: "Action"},
		{ID: 6, Name: "Horror"},
		{ID: 7, Name: "Thriller"},
		{ID: 8, Name: "Mystery"},
		{ID: 9, Name: "Documentary"},
	}
)
