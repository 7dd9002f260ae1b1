package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Result holds a geocoding result.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Client is a Nominatim geocoding client restricted to Romania.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a Nominatim geocoding client.
// userAgent is required by Nominatim's usage policy.
func New(userAgent string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		userAgent:  userAgent,
	}
}

// Search geocodes a free-form locality query within Romania.
// Returns the top result, or nil if nothing found.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	u := c.baseURL + "/search?" + url.Values{
		"q":              {query},
		"format":         {"jsonv2"},
		"limit":          {"1"},
		"countrycodes":   {"ro"},
		"addressdetails": {"0"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon: %w", err)
	}

	return &Result{
		Lat:         lat,
		Lon:         lon,
		DisplayName: results[0].DisplayName,
	}, nil
}

// Reverse performs reverse geocoding: lat/lon → nearest locality name.
// Returns the town or village, or the first display-name segment when
// address details are missing.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	u := c.baseURL + "/reverse?" + url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', 6, 64)},
		"format":         {"jsonv2"},
		"zoom":           {"10"}, // locality-level
		"addressdetails": {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("nominatim reverse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim reverse status %d", resp.StatusCode)
	}

	var result struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			County  string `json:"county"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("nominatim reverse decode: %w", err)
	}

	for _, name := range []string{result.Address.City, result.Address.Town, result.Address.Village} {
		if name != "" {
			return name, nil
		}
	}
	if result.DisplayName != "" {
		if i := strings.Index(result.DisplayName, ","); i > 0 {
			return result.DisplayName[:i], nil
		}
		return result.DisplayName, nil
	}
	return "", fmt.Errorf("no locality found")
}
