// Package routecache is the best-effort persistent cache for computed
// routes and search results. Every storage or serialization failure is
// logged and reported as a cache miss; the features the cache accelerates
// must keep working with the cache completely broken.
package routecache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"drumbun/internal/obs"
	"drumbun/internal/storage"
)

const (
	routePrefix  = "route_cache_"
	searchPrefix = "search_cache_"

	routeTTL  = 24 * time.Hour
	searchTTL = 1 * time.Hour
)

// Cache stores computed routes and search results in the persistent
// key/value store with per-namespace TTLs and lazy expiry on read.
type Cache struct {
	db      *storage.DB
	logger  *slog.Logger
	metrics *obs.Metrics
	now     func() time.Time
}

// New creates a Cache over the given store.
func New(db *storage.DB, metrics *obs.Metrics, logger *slog.Logger) *Cache {
	return &Cache{
		db:      db,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// CacheRoute stores a computed route under the normalized (from, to) key
// with a 24 hour TTL, overwriting any previous entry.
func (c *Cache) CacheRoute(ctx context.Context, route Route) {
	c.put(ctx, routeKey(route.FromName, route.ToName), "route", route, routeTTL)
}

// CachedRoute returns the cached route for the (from, to) pair, if a
// fresh entry exists. Expired entries are deleted on read.
func (c *Cache) CachedRoute(ctx context.Context, from, to string) (Route, bool) {
	var route Route
	if !c.get(ctx, routeKey(from, to), "route", &route) {
		return Route{}, false
	}
	return route, true
}

// CacheSearchResults stores search results for a query with a 1 hour TTL.
// Results are opaque to the cache.
func (c *Cache) CacheSearchResults(ctx context.Context, query string, results json.RawMessage) {
	c.put(ctx, searchKey(query), "search", results, searchTTL)
}

// CachedSearchResults returns cached results for a query, if fresh.
func (c *Cache) CachedSearchResults(ctx context.Context, query string) (json.RawMessage, bool) {
	var results json.RawMessage
	if !c.get(ctx, searchKey(query), "search", &results) {
		return nil, false
	}
	return results, true
}

// Clear removes every entry under the route and search namespaces and
// returns the number of entries removed. This is the one operation that
// reports failure to its caller: it backs an explicit admin action.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	routes, err := c.db.DeleteWithPrefix(ctx, routePrefix)
	if err != nil {
		return 0, err
	}
	searches, err := c.db.DeleteWithPrefix(ctx, searchPrefix)
	if err != nil {
		return routes, err
	}
	c.logger.Info("cache cleared", "routes", routes, "searches", searches)
	return routes + searches, nil
}

// put serializes value into an envelope and writes it. Failures are
// logged and counted, never returned.
func (c *Cache) put(ctx context.Context, key, namespace string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache write skipped", "namespace", namespace, "error", err)
		c.metrics.RecordCacheStoreFail(namespace)
		return
	}
	env := envelope{
		Data:      data,
		Timestamp: c.now().UnixMilli(),
		Expiry:    ttl.Milliseconds(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		c.logger.Warn("cache write skipped", "namespace", namespace, "error", err)
		c.metrics.RecordCacheStoreFail(namespace)
		return
	}
	if err := c.db.Set(ctx, key, string(raw)); err != nil {
		c.logger.Warn("cache write failed", "namespace", namespace, "error", err)
		c.metrics.RecordCacheStoreFail(namespace)
	}
}

// get reads and validates an entry, deleting it when expired. Any
// failure is reported as a miss.
func (c *Cache) get(ctx context.Context, key, namespace string, out any) bool {
	raw, err := c.db.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		c.metrics.RecordCacheLookup(namespace, obs.CacheMiss)
		return false
	}
	if err != nil {
		c.logger.Warn("cache read failed", "namespace", namespace, "error", err)
		c.metrics.RecordCacheLookup(namespace, obs.CacheError)
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.Warn("malformed cache entry", "namespace", namespace, "key", key, "error", err)
		c.metrics.RecordCacheLookup(namespace, obs.CacheError)
		c.deleteQuiet(ctx, key)
		return false
	}

	if c.expired(env) {
		c.metrics.RecordCacheLookup(namespace, obs.CacheExpired)
		c.deleteQuiet(ctx, key)
		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Warn("malformed cache payload", "namespace", namespace, "key", key, "error", err)
		c.metrics.RecordCacheLookup(namespace, obs.CacheError)
		c.deleteQuiet(ctx, key)
		return false
	}

	c.metrics.RecordCacheLookup(namespace, obs.CacheHit)
	return true
}

func (c *Cache) expired(env envelope) bool {
	return c.now().UnixMilli()-env.Timestamp > env.Expiry
}

func (c *Cache) deleteQuiet(ctx context.Context, key string) {
	if err := c.db.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}

// routeKey builds the storage key for a (from, to) pair.
func routeKey(from, to string) string {
	return routePrefix + keyPart(from) + "_" + keyPart(to)
}

// searchKey builds the storage key for a search query.
func searchKey(query string) string {
	return searchPrefix + keyPart(query)
}

// keyPart lowercases s and collapses whitespace runs to underscores so
// "Cluj Napoca" and "cluj  napoca" share an entry.
func keyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
