// Package textnorm provides diacritic-insensitive text normalization for
// Romanian place and attraction names. Hungarian and German characters are
// covered too since they appear throughout Transylvania.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// replacer maps the diacritics we see in practice to plain ASCII.
// Both comma-below and cedilla forms of ș/ț occur in source data.
var replacer = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"ö", "o", "ü", "u", "ő", "o", "ű", "u", "ä", "a", "ß", "ss",
)

// Normalize lowercases s and folds diacritics to ASCII. Anything the
// explicit table misses is handled by NFD decomposition with combining
// marks stripped.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	folded := replacer.Replace(lowered)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, folded)
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to
		// the table-folded form for anything pathological.
		return folded
	}
	return result
}

// Matches reports whether haystack contains query, compared
// diacritic- and case-insensitively.
func Matches(haystack, query string) bool {
	return strings.Contains(Normalize(haystack), Normalize(query))
}

// SearchVariants returns the forms of name worth trying against a remote
// search API: the original, its normalized form, and hyphen/space swapped
// variants. Duplicates are removed, first occurrence wins.
func SearchVariants(name string) []string {
	candidates := []string{
		name,
		Normalize(name),
		strings.ReplaceAll(name, "-", " "),
		strings.ReplaceAll(name, " ", "-"),
		strings.ReplaceAll(Normalize(name), "-", " "),
	}

	seen := make(map[string]bool)
	var variants []string
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		variants = append(variants, c)
	}
	return variants
}
