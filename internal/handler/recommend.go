package handler

import (
	"net/http"
	"strconv"
)

const defaultRecommendLimit = 4

// RelatedAttractions lists attractions related to the one being viewed.
// GET /api/atractii/{slug}/related?location=Bran&limit=4
func (h *Handler) RelatedAttractions(w http.ResponseWriter, r *http.Request) {
	current := r.PathValue("slug")
	location := r.URL.Query().Get("location")
	limit := recommendLimit(r)

	related, err := h.catalog.RelatedAttractions(r.Context(), current, location, limit)
	if err != nil {
		h.logger.Warn("related attractions fetch failed", "slug", current, "error", err)
		h.metrics.RecordRemoteError("catalog")
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, related)
}

// NearbyAccommodations lists accommodations around the current item.
// GET /api/cazare/{slug}/nearby?location=Bran&limit=4
func (h *Handler) NearbyAccommodations(w http.ResponseWriter, r *http.Request) {
	current := r.PathValue("slug")
	location := r.URL.Query().Get("location")
	limit := recommendLimit(r)

	nearby, err := h.catalog.NearbyAccommodations(r.Context(), current, location, limit)
	if err != nil {
		h.logger.Warn("nearby accommodations fetch failed", "slug", current, "error", err)
		h.metrics.RecordRemoteError("catalog")
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, nearby)
}

// Affiliates lists booking links for a widget zone.
// GET /api/affiliates?zone=sidebar
func (h *Handler) Affiliates(w http.ResponseWriter, r *http.Request) {
	zone := r.URL.Query().Get("zone")

	links, err := h.catalog.AffiliateLinks(r.Context(), zone)
	if err != nil {
		h.logger.Warn("affiliate links fetch failed", "zone", zone, "error", err)
		h.metrics.RecordRemoteError("catalog")
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, links)
}

// AdZones lists the active ad placement zones.
// GET /api/adzones
func (h *Handler) AdZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.catalog.AdZones(r.Context())
	if err != nil {
		h.logger.Warn("ad zones fetch failed", "error", err)
		h.metrics.RecordRemoteError("catalog")
		h.writeJSON(w, http.StatusOK, emptyList)
		return
	}
	h.writeJSON(w, http.StatusOK, zones)
}

func recommendLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 12 {
			return n
		}
	}
	return defaultRecommendLimit
}
