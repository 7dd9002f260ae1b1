// Package routing computes driving routes between Romanian localities
// via an OSRM HTTP backend and turns them into cacheable route records.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultOSRMBase = "https://router.project-osrm.org"

// Leg is one computed driving route.
type Leg struct {
	DistanceKm  float64
	DurationMin float64
	Coordinates [][2]float64 // (lat, lon)
	Steps       json.RawMessage
	Alternates  json.RawMessage
}

// Client is an OSRM routing API client.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates an OSRM client. An empty baseURL selects the public
// demo server.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultOSRMBase
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Route computes the best driving route between two points, with
// alternatives when OSRM offers them.
func (c *Client) Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*Leg, error) {
	u := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true&alternatives=true",
		c.baseURL, fromLon, fromLat, toLon, toLat)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm status %d", resp.StatusCode)
	}

	var result struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
			Geometry struct {
				Coordinates [][2]float64 `json:"coordinates"` // (lon, lat)
			} `json:"geometry"`
			Legs []struct {
				Steps json.RawMessage `json:"steps"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("osrm decode: %w", err)
	}
	if result.Code != "Ok" || len(result.Routes) == 0 {
		return nil, fmt.Errorf("osrm: no route (code %q)", result.Code)
	}

	best := result.Routes[0]
	leg := &Leg{
		DistanceKm:  best.Distance / 1000,
		DurationMin: best.Duration / 60,
	}
	for _, c := range best.Geometry.Coordinates {
		leg.Coordinates = append(leg.Coordinates, [2]float64{c[1], c[0]})
	}
	if len(best.Legs) > 0 {
		leg.Steps = best.Legs[0].Steps
	}

	if len(result.Routes) > 1 {
		type alternative struct {
			DistanceKm  float64 `json:"distance"`
			DurationMin float64 `json:"duration"`
		}
		var alts []alternative
		for _, r := range result.Routes[1:] {
			alts = append(alts, alternative{
				DistanceKm:  r.Distance / 1000,
				DurationMin: r.Duration / 60,
			})
		}
		if raw, err := json.Marshal(alts); err == nil {
			leg.Alternates = raw
		}
	}

	return leg, nil
}
