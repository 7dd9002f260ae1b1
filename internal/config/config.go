package config

import (
	"os"
	"strconv"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port   int
	DBPath string

	CatalogURL string // tabular store REST root
	CatalogKey string // API key for the hosted backend

	AdminVerifyURL string // admin verification endpoint
	ImageLookupURL string // hosted image-lookup function ("" disables)

	OSRMURL       string // routing backend ("" = public OSRM)
	FuelPricesURL string // fuel price feed ("" disables)
	RoadStatusURL string // road status feed ("" disables)

	ClearCache bool // CLI flag: clear the route/search cache and exit
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:           envInt("DRUMBUN_PORT", 8080),
		DBPath:         envStr("DRUMBUN_DB_PATH", "./drumbun.db"),
		CatalogURL:     envStr("DRUMBUN_CATALOG_URL", "https://backend.drumbun.ro/rest/v1"),
		CatalogKey:     envStr("DRUMBUN_CATALOG_KEY", ""),
		AdminVerifyURL: envStr("DRUMBUN_ADMIN_VERIFY_URL", "https://backend.drumbun.ro/functions/v1/verify-admin"),
		ImageLookupURL: envStr("DRUMBUN_IMAGE_LOOKUP_URL", "https://backend.drumbun.ro/functions/v1/get-real-images"),
		OSRMURL:        envStr("DRUMBUN_OSRM_URL", ""),
		FuelPricesURL:  envStr("DRUMBUN_FUEL_PRICES_URL", ""),
		RoadStatusURL:  envStr("DRUMBUN_ROAD_STATUS_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
