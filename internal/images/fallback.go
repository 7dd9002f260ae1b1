package images

import (
	"fmt"
	"strings"

	"drumbun/internal/slug"
)

const placeholderBase = "https://picsum.photos/seed"

// URLWithFallback returns rawURL when it is already absolute, otherwise a
// placeholder image URL derived deterministically from the keywords. The
// same keywords always produce the same placeholder, so pages stay stable
// across reloads.
func URLWithFallback(rawURL string, keywords []string, width, height int) string {
	if isAbsolute(rawURL) {
		return rawURL
	}

	seed := slug.Make(strings.Join(keywords, " "))
	if seed == "" {
		seed = "romania"
	}
	return fmt.Sprintf("%s/%s/%d/%d", placeholderBase, seed, width, height)
}

// isAbsolute reports whether u begins with a URL scheme.
func isAbsolute(u string) bool {
	i := strings.Index(u, "://")
	if i <= 0 {
		return false
	}
	for _, r := range u[:i] {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'
		if !ok {
			return false
		}
	}
	return true
}
