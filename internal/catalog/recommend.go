package catalog

// Recommendation fetchers: pull limit+1 candidates from the store, drop
// the item currently on screen, truncate to limit. Fetching one extra row
// guarantees a full result set without a second round trip when the
// current item ranks among the top results.

import (
	"context"
	"fmt"
)

// RelatedAttractions returns up to limit attractions related to the one
// identified by currentSlug, preferring the same location when given.
func (c *Client) RelatedAttractions(ctx context.Context, currentSlug, location string, limit int) ([]Attraction, error) {
	candidates, err := c.Attractions(ctx, location, limit+1)
	if err != nil {
		return nil, fmt.Errorf("related attractions: %w", err)
	}
	return withoutCurrent(candidates, func(a Attraction) string { return a.Slug }, currentSlug, limit), nil
}

// NearbyAccommodations returns up to limit accommodations around the
// current item's location, best rated first.
func (c *Client) NearbyAccommodations(ctx context.Context, currentSlug, location string, limit int) ([]Accommodation, error) {
	candidates, err := c.Accommodations(ctx, location, limit+1)
	if err != nil {
		return nil, fmt.Errorf("nearby accommodations: %w", err)
	}
	return withoutCurrent(candidates, func(a Accommodation) string { return a.Slug }, currentSlug, limit), nil
}

// withoutCurrent drops the candidate whose slug matches current and caps
// the result at limit, preserving the remote ordering.
func withoutCurrent[T any](candidates []T, slugOf func(T) string, current string, limit int) []T {
	result := make([]T, 0, limit)
	for _, cand := range candidates {
		if slugOf(cand) == current {
			continue
		}
		result = append(result, cand)
		if len(result) == limit {
			break
		}
	}
	return result
}
