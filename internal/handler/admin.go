package handler

import "net/http"

// ClearCache drops every cached route and search result. Reached only
// through the admin-verification middleware.
// POST /api/admin/cache/clear
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.cache.Clear(r.Context())
	if err != nil {
		h.logger.Error("clearing cache", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache-ul nu a putut fi golit")
		return
	}

	h.logger.Info("cache cleared", "entries", cleared)
	h.writeJSON(w, http.StatusOK, map[string]any{"cleared": cleared})
}
