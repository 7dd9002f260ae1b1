package routecache

import (
	"context"
	"encoding/json"
	"sort"
)

// RecentRoutes returns up to limit cached routes, newest first. Malformed
// and expired entries are skipped individually; one corrupt entry never
// aborts the scan.
func (c *Cache) RecentRoutes(ctx context.Context, limit int) []Route {
	if limit <= 0 {
		limit = 5
	}

	entries, err := c.db.EntriesWithPrefix(ctx, routePrefix)
	if err != nil {
		c.logger.Warn("recent routes scan failed", "error", err)
		return nil
	}

	type stamped struct {
		route Route
		ts    int64
	}
	var valid []stamped
	for _, e := range entries {
		var env envelope
		if err := json.Unmarshal([]byte(e.Value), &env); err != nil {
			c.logger.Warn("skipping malformed cache entry", "key", e.Key, "error", err)
			continue
		}
		if c.expired(env) {
			continue
		}
		var route Route
		if err := json.Unmarshal(env.Data, &route); err != nil {
			c.logger.Warn("skipping malformed route payload", "key", e.Key, "error", err)
			continue
		}
		valid = append(valid, stamped{route: route, ts: env.Timestamp})
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i].ts > valid[j].ts })

	if len(valid) > limit {
		valid = valid[:limit]
	}
	routes := make([]Route, len(valid))
	for i, s := range valid {
		routes[i] = s.route
	}
	return routes
}
