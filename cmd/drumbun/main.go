package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"drumbun/internal/adminauth"
	"drumbun/internal/catalog"
	"drumbun/internal/config"
	"drumbun/internal/geocode"
	"drumbun/internal/handler"
	"drumbun/internal/images"
	"drumbun/internal/obs"
	"drumbun/internal/routecache"
	"drumbun/internal/routing"
	"drumbun/internal/server"
	"drumbun/internal/storage"
	"drumbun/internal/widgets"
)

const userAgent = "drumbun/1.0 (travel site; contact@drumbun.ro)"

// weatherCities are the localities the weather widget covers.
var weatherCities = []widgets.City{
	{Name: "București", Lat: 44.4268, Lon: 26.1025},
	{Name: "Cluj-Napoca", Lat: 46.7712, Lon: 23.6236},
	{Name: "Brașov", Lat: 45.6580, Lon: 25.6012},
	{Name: "Timișoara", Lat: 45.7489, Lon: 21.2087},
	{Name: "Iași", Lat: 47.1585, Lon: 27.6014},
	{Name: "Constanța", Lat: 44.1598, Lon: 28.6348},
	{Name: "Sibiu", Lat: 45.7983, Lon: 24.1256},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags
	clearCache := flag.Bool("clear-cache", false, "Clear the route and search caches, then exit")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the cache database")
	flag.Parse()
	cfg.ClearCache = *clearCache

	// Context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database
	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	metrics := obs.New()
	cache := routecache.New(db, metrics, logger)

	// Handle --clear-cache flag
	if cfg.ClearCache {
		cleared, err := cache.Clear(ctx)
		if err != nil {
			logger.Error("cache clear failed", "error", err)
			os.Exit(1)
		}
		logger.Info("cache cleared", "entries", cleared)
		return
	}

	// Widget data store and background fetcher
	store := widgets.NewStore(weatherCities)
	fetcher := widgets.NewFetcher(cfg.FuelPricesURL, cfg.RoadStatusURL, store, metrics, logger)
	go fetcher.Start(ctx)

	// Route planning
	geo := geocode.New(userAgent)
	osrm := routing.NewClient(cfg.OSRMURL, logger)
	planner := routing.NewPlanner(geo, osrm, cache, store, logger)

	// Hosted backend clients
	cat := catalog.NewClient(cfg.CatalogURL, cfg.CatalogKey, logger)
	verifier := adminauth.NewClient(cfg.AdminVerifyURL, logger)
	resolver := images.NewResolver(cfg.ImageLookupURL, cfg.CatalogKey, images.NewWikimedia(userAgent), logger)

	h := handler.New(planner, cache, cat, resolver, store, geo, metrics, logger)
	srv := server.New(cfg, h, verifier, metrics, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
		os.Exit(0)
	}()

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
