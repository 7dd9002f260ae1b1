// Package images resolves display images for attractions and
// accommodations: a hosted lookup function first, then a direct Wikimedia
// Commons search, with a deterministic placeholder as last resort. Every
// failure degrades to "no images"; callers never see an error.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Image sources.
const (
	SourceWikimedia   = "wikimedia"
	SourceOSM         = "osm"
	SourcePlaceholder = "placeholder"
)

// RealImage is a resolved display image.
type RealImage struct {
	URL         string `json:"url"`
	Source      string `json:"source"`
	Attribution string `json:"attribution,omitempty"`
}

// memoryCache holds resolved images for the lifetime of the process. It
// has no expiry: resolved images for a named entity do not go stale
// within a session, and the explicit object (rather than a package
// global) keeps the lifecycle owned by whoever builds the Resolver.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string][]RealImage
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]RealImage)}
}

func (c *memoryCache) get(key string) ([]RealImage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	imgs, ok := c.entries[key]
	return imgs, ok
}

func (c *memoryCache) set(key string, imgs []RealImage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = imgs
}

// Resolver resolves images with an in-memory session cache.
type Resolver struct {
	lookupURL string // hosted image-lookup function; empty disables it
	apiKey    string
	wikimedia *Wikimedia
	client    *http.Client
	cache     *memoryCache
	logger    *slog.Logger
}

// NewResolver creates a Resolver. lookupURL may be empty, in which case
// only the Wikimedia path is used.
func NewResolver(lookupURL, apiKey string, wikimedia *Wikimedia, logger *slog.Logger) *Resolver {
	return &Resolver{
		lookupURL: lookupURL,
		apiKey:    apiKey,
		wikimedia: wikimedia,
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     newMemoryCache(),
		logger:    logger,
	}
}

// Resolve returns display images for a named entity. Results are cached
// for the process lifetime; errors yield an empty slice.
func (r *Resolver) Resolve(ctx context.Context, kind, name, location string) []RealImage {
	key := kind + ":" + name + ":" + location
	if imgs, ok := r.cache.get(key); ok {
		return imgs
	}

	imgs := r.lookup(ctx, kind, name, location)
	if len(imgs) == 0 && r.wikimedia != nil {
		var err error
		imgs, err = r.wikimedia.Search(ctx, name, location)
		if err != nil {
			r.logger.Warn("wikimedia search failed", "name", name, "error", err)
			imgs = nil
		}
	}

	// Only non-empty results are cached so a transient failure doesn't
	// pin "no images" for the rest of the session.
	if len(imgs) > 0 {
		r.cache.set(key, imgs)
	}
	return imgs
}

// lookup calls the hosted image-lookup function. Failures are logged and
// reported as no results.
func (r *Resolver) lookup(ctx context.Context, kind, name, location string) []RealImage {
	if r.lookupURL == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"kind":     kind,
		"name":     name,
		"location": location,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.lookupURL, bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("image lookup failed", "name", name, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("image lookup returned non-200", "name", name, "status", resp.StatusCode)
		return nil
	}

	var result struct {
		Images []RealImage `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		r.logger.Warn("decode image lookup response", "name", name, "error", err)
		return nil
	}
	return result.Images
}
