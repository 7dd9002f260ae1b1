// Package widgets holds the live data behind the site's informational
// widgets: weather, fuel prices and road status. A background fetcher
// refreshes the store; handlers serve whatever snapshot is present, so a
// failed refresh leaves the previous data visible instead of an error.
package widgets

import (
	"sync"
	"time"

	"drumbun/internal/geo"
)

// City is a locality the weather widget covers.
type City struct {
	Name string
	Lat  float64
	Lon  float64
}

// WeatherReport is the current weather snapshot for one city.
type WeatherReport struct {
	City        string    `json:"city"`
	TempC       float64   `json:"temp_c"`
	WindKmh     float64   `json:"wind_kmh"`
	WeatherCode int       `json:"weather_code"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FuelPrices is the national average pump price snapshot.
type FuelPrices struct {
	Petrol    float64   `json:"petrol"`
	Diesel    float64   `json:"diesel"`
	LPG       float64   `json:"lpg"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoadAlert is one road-status entry (closures, works, winter
// conditions) from the road administration feed.
type RoadAlert struct {
	Road        string `json:"road"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// Store holds widget data in a thread-safe manner.
type Store struct {
	mu      sync.RWMutex
	cities  []City
	weather map[string]WeatherReport
	fuel    *FuelPrices
	roads   []RoadAlert
}

// NewStore creates an empty widget store covering the given cities.
func NewStore(cities []City) *Store {
	return &Store{
		cities:  cities,
		weather: make(map[string]WeatherReport),
	}
}

// Cities returns the configured weather cities.
func (s *Store) Cities() []City {
	out := make([]City, len(s.cities))
	copy(out, s.cities)
	return out
}

// SetWeather stores the report for one city.
func (s *Store) SetWeather(city string, report WeatherReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather[city] = report
}

// WeatherFor returns the report for a city by name.
func (s *Store) WeatherFor(city string) (WeatherReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.weather[city]
	return r, ok
}

// NearestWeather returns the report for the configured city closest to
// the given point.
func (s *Store) NearestWeather(lat, lon float64) (WeatherReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bestDist := -1.0
	var best WeatherReport
	found := false
	for _, c := range s.cities {
		r, ok := s.weather[c.Name]
		if !ok {
			continue
		}
		d := geo.HaversineKm(lat, lon, c.Lat, c.Lon)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = r
			found = true
		}
	}
	return best, found
}

// AllWeather returns every city's report, in the configured city order.
func (s *Store) AllWeather() []WeatherReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []WeatherReport
	for _, c := range s.cities {
		if r, ok := s.weather[c.Name]; ok {
			out = append(out, r)
		}
	}
	return out
}

// SetFuelPrices replaces the fuel price snapshot.
func (s *Store) SetFuelPrices(p FuelPrices) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fuel = &p
}

// FuelPrices returns the current snapshot.
func (s *Store) FuelPrices() (FuelPrices, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fuel == nil {
		return FuelPrices{}, false
	}
	return *s.fuel, true
}

// CurrentFuelPrice returns the petrol price for fuel-cost estimates.
// Satisfies the route planner's price source.
func (s *Store) CurrentFuelPrice() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fuel == nil || s.fuel.Petrol <= 0 {
		return 0, false
	}
	return s.fuel.Petrol, true
}

// SetRoadAlerts replaces all road alerts.
func (s *Store) SetRoadAlerts(alerts []RoadAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roads = alerts
}

// RoadAlerts returns the current road alerts.
func (s *Store) RoadAlerts() []RoadAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RoadAlert, len(s.roads))
	copy(out, s.roads)
	return out
}
