package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/services"
)

type RecommendationsHandler struct {
	Recommendations *services.RecommendationService
	Logger          *logrus.Logger
}

func (h *RecommendationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	shows, err := h.Recommendations.Recommendations(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to fetch recommendations")
		return
	}
	writeJSON(w, http.StatusOK, shows)
}
