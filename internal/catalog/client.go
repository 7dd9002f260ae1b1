// Package catalog reads attractions, accommodations and affiliate links
// from the hosted backend's tabular REST API (PostgREST conventions:
// column=op.value filters, order=..., limit=...).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a read-only client for the hosted tabular store.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a catalog client. baseURL is the REST root, e.g.
// "https://xyz.example.co/rest/v1".
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}
}

// notExpired returns the filter expression for server-side expiry.
func (c *Client) notExpired() string {
	return "gt." + c.now().UTC().Format(time.RFC3339)
}

// Attractions fetches up to limit non-expired attractions, ordered by
// rating descending with missing ratings last. An empty location means no
// location filter.
func (c *Client) Attractions(ctx context.Context, location string, limit int) ([]Attraction, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("expires_at", c.notExpired())
	q.Set("order", "rating.desc.nullslast")
	q.Set("limit", strconv.Itoa(limit))
	if location != "" {
		q.Set("location", "eq."+location)
	}

	var result []Attraction
	if err := c.doGet(ctx, "attractions", q, &result); err != nil {
		return nil, fmt.Errorf("fetch attractions: %w", err)
	}
	return result, nil
}

// Accommodations fetches up to limit non-expired accommodations, best
// rated first.
func (c *Client) Accommodations(ctx context.Context, location string, limit int) ([]Accommodation, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("expires_at", c.notExpired())
	q.Set("order", "rating.desc.nullslast")
	q.Set("limit", strconv.Itoa(limit))
	if location != "" {
		q.Set("location", "eq."+location)
	}

	var result []Accommodation
	if err := c.doGet(ctx, "accommodations", q, &result); err != nil {
		return nil, fmt.Errorf("fetch accommodations: %w", err)
	}
	return result, nil
}

// AffiliateLinks fetches the non-expired affiliate links for a zone.
func (c *Client) AffiliateLinks(ctx context.Context, zone string) ([]AffiliateLink, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("expires_at", c.notExpired())
	if zone != "" {
		q.Set("zone", "eq."+zone)
	}

	var result []AffiliateLink
	if err := c.doGet(ctx, "affiliate_links", q, &result); err != nil {
		return nil, fmt.Errorf("fetch affiliate links: %w", err)
	}
	return result, nil
}

// AdZones fetches the active ad placement zones.
func (c *Client) AdZones(ctx context.Context) ([]AdZone, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("active", "eq.true")

	var result []AdZone
	if err := c.doGet(ctx, "ad_zones", q, &result); err != nil {
		return nil, fmt.Errorf("fetch ad zones: %w", err)
	}
	return result, nil
}

func (c *Client) doGet(ctx context.Context, table string, q url.Values, out any) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, table, q.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, table)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}
