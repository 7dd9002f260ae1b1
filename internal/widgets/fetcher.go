package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"drumbun/internal/obs"
)

const defaultWeatherAPI = "https://api.open-meteo.com/v1/forecast"

// Fetcher polls the weather, fuel-price and road-status feeds and
// updates the store. Individual feed failures are logged and skipped;
// the store keeps its previous snapshot.
type Fetcher struct {
	weatherAPI string
	fuelURL    string // empty disables the fuel feed
	roadsURL   string // empty disables the road feed
	store      *Store
	client     *http.Client
	interval   time.Duration
	metrics    *obs.Metrics
	logger     *slog.Logger
}

// NewFetcher creates a widget data fetcher.
func NewFetcher(fuelURL, roadsURL string, store *Store, metrics *obs.Metrics, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		weatherAPI: defaultWeatherAPI,
		fuelURL:    fuelURL,
		roadsURL:   roadsURL,
		store:      store,
		client:     &http.Client{Timeout: 15 * time.Second},
		interval:   30 * time.Minute,
		metrics:    metrics,
		logger:     logger,
	}
}

// Start begins polling the feeds. Blocks until the context is cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	f.refresh(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.refresh(ctx)
		case <-ctx.Done():
			f.logger.Info("widget fetcher stopped")
			return
		}
	}
}

// refresh fetches all feeds concurrently. Errors are handled per feed,
// so the group never aborts early.
func (f *Fetcher) refresh(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, city := range f.store.Cities() {
		city := city
		g.Go(func() error {
			report, err := f.fetchWeather(ctx, city)
			if err != nil {
				f.logger.Warn("weather fetch failed", "city", city.Name, "error", err)
				f.metrics.RecordRemoteError("weather")
				return nil
			}
			f.store.SetWeather(city.Name, report)
			return nil
		})
	}

	if f.fuelURL != "" {
		g.Go(func() error {
			prices, err := f.fetchFuelPrices(ctx)
			if err != nil {
				f.logger.Warn("fuel price fetch failed", "error", err)
				f.metrics.RecordRemoteError("fuel")
				return nil
			}
			f.store.SetFuelPrices(prices)
			return nil
		})
	}

	if f.roadsURL != "" {
		g.Go(func() error {
			alerts, err := f.fetchRoadAlerts(ctx)
			if err != nil {
				f.logger.Warn("road status fetch failed", "error", err)
				f.metrics.RecordRemoteError("roads")
				return nil
			}
			f.store.SetRoadAlerts(alerts)
			return nil
		})
	}

	g.Wait()
	f.logger.Info("widget data refreshed", "cities", len(f.store.Cities()))
}

func (f *Fetcher) fetchWeather(ctx context.Context, city City) (WeatherReport, error) {
	u := f.weatherAPI + "?" + url.Values{
		"latitude":  {strconv.FormatFloat(city.Lat, 'f', 4, 64)},
		"longitude": {strconv.FormatFloat(city.Lon, 'f', 4, 64)},
		"current":   {"temperature_2m,wind_speed_10m,weather_code"},
	}.Encode()

	var result struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := f.doGet(ctx, u, &result); err != nil {
		return WeatherReport{}, err
	}

	return WeatherReport{
		City:        city.Name,
		TempC:       result.Current.Temperature,
		WindKmh:     result.Current.WindSpeed,
		WeatherCode: result.Current.WeatherCode,
		UpdatedAt:   time.Now(),
	}, nil
}

func (f *Fetcher) fetchFuelPrices(ctx context.Context) (FuelPrices, error) {
	var result FuelPrices
	if err := f.doGet(ctx, f.fuelURL, &result); err != nil {
		return FuelPrices{}, err
	}
	if result.Currency == "" {
		result.Currency = "RON"
	}
	result.UpdatedAt = time.Now()
	return result, nil
}

func (f *Fetcher) fetchRoadAlerts(ctx context.Context) ([]RoadAlert, error) {
	var result []RoadAlert
	if err := f.doGet(ctx, f.roadsURL, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Fetcher) doGet(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
