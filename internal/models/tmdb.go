package models

// Wire types for the TMDb v3 API, trimmed to the fields the app reads.

type TMDBTVShow struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBGenreList struct {
	Genres []TMDBGenre `json:"genres"`
}

type TMDBPaginatedTVShows struct {
	Page         int          `json:"page"`
	Results      []TMDBTVShow `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type TMDBNetwork struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path"`
}

type TMDBCreator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TMDBCastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type TMDBVideo struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type TMDBProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

type TMDBCountryProviders struct {
	Link     string         `json:"link"`
	Flatrate []TMDBProvider `json:"flatrate"`
	Rent     []TMDBProvider `json:"rent"`
	Buy      []TMDBProvider `json:"buy"`
}

type TMDBTVShowDetails struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
	Overview         string      `json:"overview"`
	FirstAirDate     string      `json:"first_air_date"`
	LastAirDate      string      `json:"last_air_date"`
	VoteAverage      float64     `json:"vote_average"`
	Genres           []TMDBGenre `json:"genres"`
	EpisodeRunTime   []int       `json:"episode_run_time"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	NumberOfSeasons  int         `json:"number_of_seasons"`
	Status           string      `json:"status"`

	Networks  []TMDBNetwork `json:"networks"`
	CreatedBy []TMDBCreator `json:"created_by"`

	Credits struct {
		Cast []TMDBCastMember `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []TMDBVideo `json:"results"`
	} `json:"videos"`
	Similar         TMDBPaginatedTVShows `json:"similar"`
	Recommendations TMDBPaginatedTVShows `json:"recommendations"`
	WatchProviders  struct {
		Results map[string]TMDBCountryProviders `json:"results"`
	} `json:"watch/providers"`
}

// GenreIDList flattens the detail response's genre objects to bare IDs so the
// two TMDb show shapes can be treated alike.
func (d *TMDBTVShowDetails) GenreIDList() []int {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// Year extracts the release year from the first air date, or "" if unknown.
func (d *TMDBTVShowDetails) Year() string {
	if len(d.FirstAirDate) >= 4 {
		return d.FirstAirDate[:4]
	}
	return ""
}
