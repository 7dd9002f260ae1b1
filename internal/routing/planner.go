package routing

import (
	"context"
	"fmt"
	"log/slog"

	"drumbun/internal/geocode"
	"drumbun/internal/routecache"
)

// Default fuel assumptions when no live price is available.
const (
	defaultConsumption = 7.5  // liters per 100 km
	defaultFuelPrice   = 7.20 // lei per liter
)

// Geocoder resolves a locality name to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) (*geocode.Result, error)
}

// Router computes a driving route between two points.
type Router interface {
	Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*Leg, error)
}

// FuelPriceSource supplies the current petrol price in lei per liter.
// The boolean is false when no live price is known.
type FuelPriceSource interface {
	CurrentFuelPrice() (float64, bool)
}

// Planner computes routes between named localities, consulting the
// persistent cache first. Route computation must keep working when the
// cache layer is broken: the cache is consulted and updated best-effort.
type Planner struct {
	geo    Geocoder
	router Router
	cache  *routecache.Cache
	fuel   FuelPriceSource
	logger *slog.Logger
}

// NewPlanner creates a Planner. fuel may be nil, in which case a default
// petrol price is assumed.
func NewPlanner(geo Geocoder, router Router, cache *routecache.Cache, fuel FuelPriceSource, logger *slog.Logger) *Planner {
	return &Planner{geo: geo, router: router, cache: cache, fuel: fuel, logger: logger}
}

// Plan returns the route between two localities, from cache when fresh,
// computed and cached otherwise.
func (p *Planner) Plan(ctx context.Context, from, to string) (routecache.Route, error) {
	if cached, ok := p.cache.CachedRoute(ctx, from, to); ok {
		return cached, nil
	}

	origin, err := p.geo.Search(ctx, from)
	if err != nil {
		return routecache.Route{}, fmt.Errorf("geocode %q: %w", from, err)
	}
	if origin == nil {
		return routecache.Route{}, fmt.Errorf("locality %q not found", from)
	}
	dest, err := p.geo.Search(ctx, to)
	if err != nil {
		return routecache.Route{}, fmt.Errorf("geocode %q: %w", to, err)
	}
	if dest == nil {
		return routecache.Route{}, fmt.Errorf("locality %q not found", to)
	}

	leg, err := p.router.Route(ctx, origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	if err != nil {
		return routecache.Route{}, fmt.Errorf("route %q -> %q: %w", from, to, err)
	}

	route := routecache.Route{
		FromName:     from,
		ToName:       to,
		DistanceKm:   leg.DistanceKm,
		DurationMin:  leg.DurationMin,
		Steps:        leg.Steps,
		Alternatives: leg.Alternates,
		FuelCost:     p.fuelCost(leg.DistanceKm),
	}
	for _, c := range leg.Coordinates {
		route.Coordinates = append(route.Coordinates, routecache.Coordinate{Lat: c[0], Lon: c[1]})
	}

	p.cache.CacheRoute(ctx, route)
	return route, nil
}

// fuelCost estimates the trip's fuel cost in lei.
func (p *Planner) fuelCost(distanceKm float64) float64 {
	price := defaultFuelPrice
	if p.fuel != nil {
		if live, ok := p.fuel.CurrentFuelPrice(); ok {
			price = live
		}
	}
	liters := distanceKm / 100 * defaultConsumption
	return round2(liters * price)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
