package catalog

import (
	"context"
	"fmt"

	"drumbun/internal/textnorm"
)

const searchFetchLimit = 200

// SearchResult is one match from a catalog search.
type SearchResult struct {
	Kind     string `json:"kind"` // "atractii" or "cazare"
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Location string `json:"location"`
	County   string `json:"county,omitempty"`
}

// Search matches attractions and accommodations against a free-form
// query, diacritic- and case-insensitively, on name and location.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	attractions, err := c.Attractions(ctx, "", searchFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	accommodations, err := c.Accommodations(ctx, "", searchFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var results []SearchResult
	for _, a := range attractions {
		if matchesAny(query, a.Name, a.Location, a.Category) {
			results = append(results, SearchResult{
				Kind:     "atractii",
				Slug:     a.Slug,
				Name:     a.Name,
				Location: a.Location,
				County:   a.County,
			})
		}
	}
	for _, a := range accommodations {
		if matchesAny(query, a.Title, a.Location) {
			results = append(results, SearchResult{
				Kind:     "cazare",
				Slug:     a.Slug,
				Name:     a.Title,
				Location: a.Location,
				County:   a.County,
			})
		}
	}
	return results, nil
}

func matchesAny(query string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && textnorm.Matches(f, query) {
			return true
		}
	}
	return false
}
