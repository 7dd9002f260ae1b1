// Package slug builds URL-safe identifiers and detail-page paths.
package slug

import (
	"net/url"
	"strings"

	"drumbun/internal/textnorm"
)

const maxLen = 60

// Make derives a slug from a display name: normalized lowercase ASCII,
// non-alphanumeric runs collapsed to single hyphens, trimmed, capped at 60
// characters. Idempotent for already-clean input.
func Make(s string) string {
	normalized := textnorm.Normalize(s)

	var b strings.Builder
	b.Grow(len(normalized))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range normalized {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	return out
}

// DetailURL builds the path for an entity detail page.
//
// Two URL forms exist for backward compatibility with the original scheme:
// when the normalized location is empty or the literal "romania" the slug
// goes under /{kind}/ with the location as a query parameter; otherwise the
// location becomes a path segment: /{location}/{kind}/{slug}. The county,
// when present, is always a query parameter.
func DetailURL(kind, s, location, county string) string {
	normLoc := textnorm.Normalize(strings.TrimSpace(location))

	q := url.Values{}
	if normLoc == "" || normLoc == "romania" {
		if location != "" {
			q.Set("location", location)
		}
		if county != "" {
			q.Set("county", county)
		}
		path := "/" + kind + "/" + s
		if len(q) > 0 {
			return path + "?" + q.Encode()
		}
		return path
	}

	if county != "" {
		q.Set("county", county)
	}
	path := "/" + Make(location) + "/" + kind + "/" + s
	if len(q) > 0 {
		return path + "?" + q.Encode()
	}
	return path
}
