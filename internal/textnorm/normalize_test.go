package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize_RomanianDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cluj-Napoca, Țara Bârsei", "cluj-napoca, tara barsei"},
		{"Brașov", "brasov"},
		{"Timișoara", "timisoara"},
		{"Târgu Mureș", "targu mures"},
		{"Piatra Neamț", "piatra neamt"},
		{"Constanța", "constanta"},
		// Cedilla forms (legacy encoding still common in data sources)
		{"Braşov", "brasov"},
		{"Constanţa", "constanta"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_HungarianGerman(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ödorheiu", "odorheiu"},
		{"Gyergyószentmiklós", "gyergyoszentmiklos"},
		{"Hőség", "hoseg"},
		{"Műút", "muut"},
		{"Hermannstadt Straße", "hermannstadt strasse"},
		{"Mühlbach", "muhlbach"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_OutputIsASCII(t *testing.T) {
	inputs := []string{
		"Cluj-Napoca, Țara Bârsei",
		"Sighișoara",
		"Băile Herculane",
		"Székelyudvarhely",
		"Großschenk",
		"Café São Paulo", // outside the explicit table, handled by NFD
	}

	for _, in := range inputs {
		got := Normalize(in)
		for _, r := range got {
			if r > 127 {
				t.Errorf("Normalize(%q) = %q contains non-ASCII rune %q", in, got, r)
			}
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		haystack string
		query    string
		want     bool
	}{
		{"Castelul Bran", "bran", true},
		{"Castelul Bran", "BRAN", true},
		{"Băile Felix", "baile", true},
		{"Băile Felix", "băile", true},
		{"Salina Turda", "praid", false},
		{"Transfăgărășan", "fagaras", true},
		{"", "anything", false},
		{"anything", "", true}, // empty query matches everything
	}

	for _, tt := range tests {
		if got := Matches(tt.haystack, tt.query); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.haystack, tt.query, got, tt.want)
		}
	}
}

func TestSearchVariants(t *testing.T) {
	variants := SearchVariants("Cluj-Napoca")

	if len(variants) == 0 {
		t.Fatal("no variants returned")
	}
	if variants[0] != "Cluj-Napoca" {
		t.Errorf("first variant = %q, want original name", variants[0])
	}

	has := func(s string) bool {
		for _, v := range variants {
			if v == s {
				return true
			}
		}
		return false
	}
	if !has("cluj-napoca") {
		t.Error("variants should include the normalized form")
	}
	if !has("Cluj Napoca") {
		t.Error("variants should include the hyphen-to-space form")
	}
}

func TestSearchVariants_Deduplicated(t *testing.T) {
	// Already-normalized single word: original == normalized, and the
	// separator swaps are no-ops.
	variants := SearchVariants("sibiu")
	if len(variants) != 1 {
		t.Errorf("got %d variants %v, want 1", len(variants), variants)
	}

	seen := make(map[string]bool)
	for _, v := range SearchVariants("Târgu Jiu") {
		if seen[v] {
			t.Errorf("duplicate variant %q", v)
		}
		seen[v] = true
	}
}

func TestSearchVariants_Empty(t *testing.T) {
	if got := SearchVariants(""); len(got) != 0 {
		t.Errorf("SearchVariants(\"\") = %v, want none", got)
	}
}

func TestNormalize_OnlyExpectedCharacters(t *testing.T) {
	got := Normalize("Cluj-Napoca, Țara Bârsei!!")
	for _, r := range got {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
			r == '-' || r == ' ' || r == ',' || r == '!'
		if !ok {
			t.Errorf("unexpected rune %q in %q", r, got)
		}
	}
	if strings.ContainsAny(got, "ăâîșțöüőűäß") {
		t.Errorf("diacritics survived normalization: %q", got)
	}
}
