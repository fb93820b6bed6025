package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forgehq/hackforge/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// StatsHandler handles GET /hackathons/{hackathonID}/dashboard.
func (h *DashboardHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")

	stats, err := h.dashboardService.GetStats(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
