package handler

import (
	"net/http"

	"edu-backoffice/internal/model"
	"edu-backoffice/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Data answers GET /api/super-admin/data?view=<name> with the bare row array.
func (h *DashboardHandler) Data(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.View(r.Context(), r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.OverviewResponse{
		Success: true,
		Views:   h.service.Overview(r.Context()),
	})
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}
