package handler

import (
	"net/http"
	"strconv"
	"strings"

	"drumbun/internal/images"
)

// Images resolves display images for a named entity.
// GET /api/images?kind=atractii&name=Castelul+Bran&location=Bran
func (h *Handler) Images(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("kind")
	name := strings.TrimSpace(q.Get("name"))
	location := strings.TrimSpace(q.Get("location"))
	if kind == "" || name == "" {
		h.writeError(w, http.StatusBadRequest, "parametrii kind și name sunt obligatorii")
		return
	}

	resolved := h.images.Resolve(r.Context(), kind, name, location)
	if len(resolved) > 0 {
		h.writeJSON(w, http.StatusOK, resolved)
		return
	}

	// Nothing found anywhere: a deterministic placeholder keeps the
	// page layout stable.
	width, height := imageSize(q.Get("w"), 800), imageSize(q.Get("h"), 600)
	placeholder := images.RealImage{
		URL:    images.URLWithFallback("", []string{name, location}, width, height),
		Source: images.SourcePlaceholder,
	}
	h.writeJSON(w, http.StatusOK, []images.RealImage{placeholder})
}

func imageSize(v string, fallback int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 2000 {
		return n
	}
	return fallback
}
