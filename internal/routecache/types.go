package routecache

import "encoding/json"

// Coordinate is a (lat, lon) point on a route geometry.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is a computed route between two localities. Steps and
// Alternatives are stored opaquely; the cache never interprets them.
type Route struct {
	FromName     string          `json:"fromName"`
	ToName       string          `json:"toName"`
	DistanceKm   float64         `json:"distance"`
	DurationMin  float64         `json:"duration"`
	Coordinates  []Coordinate    `json:"coordinates"`
	Steps        json.RawMessage `json:"steps,omitempty"`
	FuelCost     float64         `json:"fuelCost"`
	Alternatives json.RawMessage `json:"alternatives,omitempty"`
}

// envelope wraps a cached value with its write time and time-to-live.
// A stored entry is valid iff now - timestamp <= expiry.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch milliseconds
	Expiry    int64           `json:"expiry"`    // milliseconds
}
