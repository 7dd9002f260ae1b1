// Package handler implements the JSON API. Handlers follow the site's
// degrade-to-empty policy: a failed upstream call renders an empty result
// with a warning in the log, never a broken page.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"drumbun/internal/catalog"
	"drumbun/internal/images"
	"drumbun/internal/obs"
	"drumbun/internal/routecache"
	"drumbun/internal/routing"
	"drumbun/internal/widgets"
)

// ReverseGeocoder resolves coordinates to a locality name.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	planner  *routing.Planner
	cache    *routecache.Cache
	catalog  *catalog.Client
	images   *images.Resolver
	widgets  *widgets.Store
	geocoder ReverseGeocoder
	metrics  *obs.Metrics
	logger   *slog.Logger
}

// New creates a Handler.
func New(planner *routing.Planner, cache *routecache.Cache, cat *catalog.Client, img *images.Resolver, wid *widgets.Store, geocoder ReverseGeocoder, metrics *obs.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		planner:  planner,
		cache:    cache,
		catalog:  cat,
		images:   img,
		widgets:  wid,
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}
}

// writeJSON serializes v with the standard headers. Encoding failures
// are logged; by then the status line is already out.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}

// writeError sends a JSON error body.
func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// emptyList is what degraded list endpoints serve.
var emptyList = []struct{}{}
