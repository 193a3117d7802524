package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/su-gabriel/ScreenlistApp/internal/services"
)

type InsightsHandler struct {
	Insights *services.InsightService
	Logger   *logrus.Logger
}

func (h *InsightsHandler) Basic(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	insights, err := h.Insights.BasicInsights(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to generate insights")
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *InsightsHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)

	insights, err := h.Insights.DetailedInsights(r.Context(), userID)
	if err != nil {
		respondError(w, h.Logger, err, "Failed to generate detailed insights")
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
