package http

import (
	"net/http"

	"stats-collector/internal/dashboards"
)

type dashboardPageHandler struct {
	dashboardService dashboards.DashboardService
}

func NewDashboardPageHandler(dashboardService dashboards.DashboardService) AppHttpHandler {
	return &dashboardPageHandler{dashboardService: dashboardService}
}

// Handle processes GET / requests.
func (h *dashboardPageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	page, err := h.dashboardService.Page(r.Context())
	if err != nil {
		return err
	}

	w.Header().Set(headerContentType, contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
	return nil
}
