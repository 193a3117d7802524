package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/models"
)

// genreImages maps catalog genre IDs to curated backdrop stills for the
// genre browse page.
var genreImages = map[int]string{
	10759: "https://image.tmdb.org/t/p/w500/xDEVdWduhRjcYd0Vz9YwXk1dTu0.jpg", // Action & Adventure
	16:    "https://image.tmdb.org/t/p/w500/wUWrX8Ua4IKVCWQgXvOF448BFIl.jpg", // Animation
	35:    "https://image.tmdb.org/t/p/w500/5qNHVYQvY9tSjIWDYp0Jzyl8FjS.jpg", // Comedy
	80:    "https://image.tmdb.org/t/p/w500/6t6r1VGQTTQecN4V0sZUqGLEMQO.jpg", // Crime
	99:    "https://image.tmdb.org/t/p/w500/pWBgjkG8ASxkqS8iGrEuUYnueKP.jpg", // Documentary
	18:    "https://image.tmdb.org/t/p/w500/3p39i93xnJ3iAAz5s0gjGXxbcNO.jpg", // Drama
	10751: "https://image.tmdb.org/t/p/w500/3O7KINg6oJEmGlHXA3fMk2aw7Ui.jpg", // Family
	10762: "https://image.tmdb.org/t/p/w500/4cPIkL7kQAJQxHyW7biE6yjYzpX.jpg", // Kids
	9648:  "https://image.tmdb.org/t/p/w500/rnFcbgaVlZML7FqdGPd5OFPW7Zq.jpg", // Mystery
	10763: "https://image.tmdb.org/t/p/w500/czQbDpjbiAH7LHNP1lKhjy6Bbs.jpg",  // News
	10764: "https://image.tmdb.org/t/p/w500/z8TGv7Jdnptgel231J6KKZmG9QI.jpg", // Reality
	10765: "https://image.tmdb.org/t/p/w500/xHrp5yGXMRkJmE7ctpbcMxzpM17.jpg", // Sci-Fi & Fantasy
	10766: "https://image.tmdb.org/t/p/w500/etj8E2o0Bud0HkONVQPjyCkIvpv.jpg", // Soap
	10767: "https://image.tmdb.org/t/p/w500/AjQP728h0PI40bHWQkFYbNX0J3S.jpg", // Talk
	10768: "https://image.tmdb.org/t/p/w500/fXRXAqnrWOGKKSu8lHJzuTcyHME.jpg", // War & Politics
	37:    "https://image.tmdb.org/t/p/w500/qUi3Fgo2i6riiGIQqx4sSIbQXDP.jpg", // Western
}

type GenresHandler struct {
	Catalog Catalog
	Logger  *logrus.Logger
}

// DecoratedGenre is a catalog genre with a display image and sort priority.
type DecoratedGenre struct {
	models.TMDBGenre
	Priority int    `json:"priority"`
	ImageURL string `json:"imageUrl"`
}

// List returns the catalog genre list decorated with images and the primary
// genre priority. Genres without a curated image get a generated avatar.
func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Catalog.TVGenres(r.Context())
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch genres")
		return
	}

	decorated := make([]DecoratedGenre, 0, len(genres))
	for _, genre := range genres {
		priority := 999
		for i, id := range primaryGenrePriority {
			if id == genre.ID {
				priority = i
				break
			}
		}

		imageURL, ok := genreImages[genre.ID]
		if !ok {
			imageURL = fmt.Sprintf(
				"https://ui-avatars.com/api/?name=%s&background=random&color=fff&size=256",
				url.QueryEscape(genre.Name),
			)
		}

		decorated = append(decorated, DecoratedGenre{
			TMDBGenre: genre,
			Priority:  priority,
			ImageURL:  imageURL,
		})
	}
	writeJSON(w, http.StatusOK, decorated)
}
