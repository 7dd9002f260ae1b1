package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"drumbun/internal/adminauth"
	"drumbun/internal/config"
	"drumbun/internal/handler"
	"drumbun/internal/obs"
)

// Server is the HTTP server for the drumbun API.
type Server struct {
	mux     *http.ServeMux
	cfg     *config.Config
	metrics *obs.Metrics
	logger  *slog.Logger
}

// New creates a new Server with all routes registered.
func New(cfg *config.Config, h *handler.Handler, verifier adminauth.Verifier, metrics *obs.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{mux: mux, cfg: cfg, metrics: metrics, logger: logger}

	// Routes
	mux.HandleFunc("GET /api/route", h.Route)
	mux.HandleFunc("GET /api/route/recent", h.RecentRoutes)

	// Search and recommendations
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("GET /api/atractii/{slug}/related", h.RelatedAttractions)
	mux.HandleFunc("GET /api/cazare/{slug}/nearby", h.NearbyAccommodations)

	// Affiliate content
	mux.HandleFunc("GET /api/affiliates", h.Affiliates)
	mux.HandleFunc("GET /api/adzones", h.AdZones)

	// Images and canonical links
	mux.HandleFunc("GET /api/images", h.Images)
	mux.HandleFunc("GET /api/links", h.DetailLink)

	// Geocoding
	mux.HandleFunc("GET /api/geocode/reverse", h.Locality)

	// Widgets
	mux.HandleFunc("GET /api/widgets/weather", h.Weather)
	mux.HandleFunc("GET /api/widgets/fuel", h.Fuel)
	mux.HandleFunc("GET /api/widgets/roads", h.Roads)

	// Admin
	mux.Handle("POST /api/admin/cache/clear", requireAdmin(http.HandlerFunc(h.ClearCache), verifier, logger))

	// Operational
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("server starting", "addr", addr)
	return http.ListenAndServe(addr, withMiddleware(s.mux, s.logger, s.metrics))
}

// Handler returns the fully wrapped handler, for tests and for callers
// that manage the listener themselves.
func (s *Server) Handler() http.Handler {
	return withMiddleware(s.mux, s.logger, s.metrics)
}
