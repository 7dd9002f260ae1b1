package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"drumbun/internal/textnorm"
)

const defaultWikimediaAPI = "https://commons.wikimedia.org/w/api.php"

// Wikimedia searches Wikimedia Commons for images of a named place. Two
// sequential API calls: a file-namespace search for titles, then an
// imageinfo query for the URLs and attribution of those titles.
type Wikimedia struct {
	apiURL    string
	client    *http.Client
	userAgent string
}

// NewWikimedia creates a Commons client. The user agent is required by
// the Wikimedia API usage policy.
func NewWikimedia(userAgent string) *Wikimedia {
	return &Wikimedia{
		apiURL:    defaultWikimediaAPI,
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
	}
}

// Search finds up to three Commons images for name, trying each search
// variant of the name until one yields titles.
func (w *Wikimedia) Search(ctx context.Context, name, location string) ([]RealImage, error) {
	for _, variant := range textnorm.SearchVariants(name) {
		query := variant
		if location != "" {
			query = variant + " " + location
		}

		titles, err := w.searchTitles(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(titles) == 0 {
			continue
		}

		return w.imageInfo(ctx, titles)
	}
	return nil, nil
}

// searchTitles runs the first call: a text search over the File namespace.
func (w *Wikimedia) searchTitles(ctx context.Context, query string) ([]string, error) {
	u := w.apiURL + "?" + url.Values{
		"action":      {"query"},
		"list":        {"search"},
		"srsearch":    {query},
		"srnamespace": {"6"}, // File:
		"srlimit":     {"3"},
		"format":      {"json"},
	}.Encode()

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := w.doGet(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("commons search: %w", err)
	}

	var titles []string
	for _, s := range result.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

// imageInfo runs the second call: resolve the found titles to thumbnail
// URLs and artist attribution.
func (w *Wikimedia) imageInfo(ctx context.Context, titles []string) ([]RealImage, error) {
	u := w.apiURL + "?" + url.Values{
		"action":     {"query"},
		"titles":     {strings.Join(titles, "|")},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|extmetadata"},
		"iiurlwidth": {"800"},
		"format":     {"json"},
	}.Encode()

	var result struct {
		Query struct {
			Pages map[string]struct {
				ImageInfo []struct {
					ThumbURL    string `json:"thumburl"`
					URL         string `json:"url"`
					ExtMetadata struct {
						Artist struct {
							Value string `json:"value"`
						} `json:"Artist"`
					} `json:"extmetadata"`
				} `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := w.doGet(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("commons imageinfo: %w", err)
	}

	var images []RealImage
	for _, page := range result.Query.Pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		imgURL := info.ThumbURL
		if imgURL == "" {
			imgURL = info.URL
		}
		if imgURL == "" {
			continue
		}
		images = append(images, RealImage{
			URL:         imgURL,
			Source:      SourceWikimedia,
			Attribution: stripTags(info.ExtMetadata.Artist.Value),
		})
	}
	return images, nil
}

func (w *Wikimedia) doGet(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("commons status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// stripTags drops HTML markup from Commons artist fields, which usually
// arrive as `<a href="...">Name</a>`.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
