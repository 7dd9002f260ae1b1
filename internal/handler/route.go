package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// Route plans a driving route between two localities.
// GET /api/route?from=Cluj-Napoca&to=Brașov
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		h.writeError(w, http.StatusBadRequest, "parametrii from și to sunt obligatorii")
		return
	}

	route, err := h.planner.Plan(r.Context(), from, to)
	if err != nil {
		h.logger.Warn("route planning failed", "from", from, "to", to, "error", err)
		h.writeError(w, http.StatusBadGateway, "ruta nu a putut fi calculată")
		return
	}

	h.writeJSON(w, http.StatusOK, route)
}

// RecentRoutes lists the most recently computed routes.
// GET /api/route/recent?limit=5
func (h *Handler) RecentRoutes(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}

	routes := h.cache.RecentRoutes(r.Context(), limit)
	if routes == nil {
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, routes)
}
