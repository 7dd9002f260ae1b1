package widgets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"drumbun/internal/obs"
)

func TestRefresh_UpdatesAllFeeds(t *testing.T) {
	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{"temperature_2m":21.5,"wind_speed_10m":12.0,"weather_code":3}}`))
	}))
	defer weather.Close()
	fuel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"petrol":7.45,"diesel":7.80,"lpg":3.95}`))
	}))
	defer fuel.Close()
	roads := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"road":"DN7C","status":"închis","description":"Transfăgărășan închis iarna"}]`))
	}))
	defer roads.Close()

	store := NewStore([]City{{Name: "Cluj-Napoca", Lat: 46.77, Lon: 23.62}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := NewFetcher(fuel.URL, roads.URL, store, obs.New(), logger)
	f.weatherAPI = weather.URL

	f.refresh(context.Background())

	r, ok := store.WeatherFor("Cluj-Napoca")
	if !ok || r.TempC != 21.5 || r.WeatherCode != 3 {
		t.Errorf("weather = %+v, %v", r, ok)
	}
	p, ok := store.FuelPrices()
	if !ok || p.Petrol != 7.45 {
		t.Errorf("fuel = %+v, %v", p, ok)
	}
	if p.Currency != "RON" {
		t.Errorf("currency = %q, want RON default", p.Currency)
	}
	alerts := store.RoadAlerts()
	if len(alerts) != 1 || alerts[0].Road != "DN7C" {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestRefresh_FeedFailureKeepsPreviousSnapshot(t *testing.T) {
	store := NewStore([]City{{Name: "Cluj-Napoca", Lat: 46.77, Lon: 23.62}})
	store.SetWeather("Cluj-Napoca", WeatherReport{City: "Cluj-Napoca", TempC: 10})
	store.SetFuelPrices(FuelPrices{Petrol: 7.00})

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer failing.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := NewFetcher(failing.URL, failing.URL, store, obs.New(), logger)
	f.weatherAPI = failing.URL

	f.refresh(context.Background())

	// All fetches failed; earlier snapshots remain served.
	if r, ok := store.WeatherFor("Cluj-Napoca"); !ok || r.TempC != 10 {
		t.Errorf("weather after failed refresh = %+v, %v", r, ok)
	}
	if price, ok := store.CurrentFuelPrice(); !ok || price != 7.00 {
		t.Errorf("fuel after failed refresh = %v, %v", price, ok)
	}
}

func TestRefresh_DisabledFeeds(t *testing.T) {
	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{"temperature_2m":5}}`))
	}))
	defer weather.Close()

	store := NewStore([]City{{Name: "Brașov", Lat: 45.65, Lon: 25.60}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := NewFetcher("", "", store, obs.New(), logger)
	f.weatherAPI = weather.URL

	f.refresh(context.Background())

	if _, ok := store.WeatherFor("Brașov"); !ok {
		t.Error("weather should refresh even with fuel/roads disabled")
	}
	if _, ok := store.FuelPrices(); ok {
		t.Error("disabled fuel feed should leave no snapshot")
	}
}
