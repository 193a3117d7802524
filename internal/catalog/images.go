package catalog

const imageBaseURL = "https://image.tmdb.org/t/p/"

// PosterURL builds a w500 poster URL, or "" when the catalog has no poster.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "w500" + path
}

// BackdropURL builds an original-size backdrop URL.
func BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "original" + path
}

// ProfileURL builds a w200 cast/network image URL.
func ProfileURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "w200" + path
}
