package handler

import (
	"net/http"
	"strconv"
)

// Locality resolves a map coordinate to its locality name, used by the
// frontend when the user clicks a point instead of typing a place.
// GET /api/geocode/reverse?lat=45.65&lon=25.61
func (h *Handler) Locality(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		h.writeError(w, http.StatusBadRequest, "coordonate invalide")
		return
	}

	name, err := h.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		h.logger.Warn("reverse geocode failed", "lat", lat, "lon", lon, "error", err)
		h.metrics.RecordRemoteError("geocode")
		h.writeError(w, http.StatusNotFound, "localitatea nu a putut fi determinată")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"locality": name})
}
