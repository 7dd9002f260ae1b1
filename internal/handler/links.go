package handler

import (
	"net/http"
	"strings"

	"drumbun/internal/slug"
)

// DetailLink builds the canonical detail-page path for a catalog entry.
// The frontend uses this for sharing and for sitemap generation.
// GET /api/links?kind=atractii&name=Castelul+Bran&location=Bran&county=Brașov
func (h *Handler) DetailLink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("kind")
	name := strings.TrimSpace(q.Get("name"))
	if (kind != "atractii" && kind != "cazare") || name == "" {
		h.writeError(w, http.StatusBadRequest, "parametrii kind (atractii|cazare) și name sunt obligatorii")
		return
	}

	url := slug.DetailURL(kind, slug.Make(name), q.Get("location"), q.Get("county"))
	h.writeJSON(w, http.StatusOK, map[string]string{
		"slug": slug.Make(name),
		"url":  url,
	})
}
