package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Search matches attractions and accommodations against a free-form
// query, with a one-hour result cache keyed by the normalized query.
// GET /api/search?q=brasov
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "parametrul q este obligatoriu")
		return
	}

	if cached, ok := h.cache.CachedSearchResults(r.Context(), query); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	results, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("catalog search failed", "query", query, "error", err)
		h.metrics.RecordRemoteError("catalog")
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	if results == nil {
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}

	// Cache the serialized form so a hit can be served without
	// re-encoding. Failures inside the cache are its own business.
	if raw, err := json.Marshal(results); err == nil {
		h.cache.CacheSearchResults(r.Context(), query, raw)
	}

	h.writeJSON(w, http.StatusOK, results)
}
