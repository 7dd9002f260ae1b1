package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, "test-key", logger)
}

func attractionsJSON(slugs ...string) []Attraction {
	var out []Attraction
	for _, s := range slugs {
		out = append(out, Attraction{
			ID:        "id-" + s,
			Slug:      s,
			Name:      "Atracția " + s,
			Location:  "Bran",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
	}
	return out
}

func TestRelatedAttractions_ExcludesCurrent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(attractionsJSON("a", "b", "c"))
	})

	got, err := c.RelatedAttractions(context.Background(), "b", "Bran", 2)
	if err != nil {
		t.Fatalf("RelatedAttractions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want exactly 2", len(got))
	}
	if got[0].Slug != "a" || got[1].Slug != "c" {
		t.Errorf("slugs = [%s %s], want [a c] in original order", got[0].Slug, got[1].Slug)
	}
}

func TestRelatedAttractions_CurrentNotInCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(attractionsJSON("a", "b", "c"))
	})

	got, err := c.RelatedAttractions(context.Background(), "zzz", "Bran", 2)
	if err != nil {
		t.Fatalf("RelatedAttractions: %v", err)
	}
	// The extra row is trimmed even when nothing was excluded.
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Slug != "a" || got[1].Slug != "b" {
		t.Errorf("slugs = [%s %s], want [a b]", got[0].Slug, got[1].Slug)
	}
}

func TestRelatedAttractions_QueryShape(t *testing.T) {
	var captured *http.Request
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		json.NewEncoder(w).Encode([]Attraction{})
	})

	_, err := c.RelatedAttractions(context.Background(), "x", "Bran", 4)
	if err != nil {
		t.Fatalf("RelatedAttractions: %v", err)
	}

	if !strings.HasSuffix(captured.URL.Path, "/attractions") {
		t.Errorf("path = %q, want .../attractions", captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("limit") != "5" {
		t.Errorf("limit = %q, want 5 (limit+1)", q.Get("limit"))
	}
	if q.Get("location") != "eq.Bran" {
		t.Errorf("location = %q, want eq.Bran", q.Get("location"))
	}
	if !strings.HasPrefix(q.Get("expires_at"), "gt.") {
		t.Errorf("expires_at = %q, want gt.<timestamp>", q.Get("expires_at"))
	}
	if q.Get("order") != "rating.desc.nullslast" {
		t.Errorf("order = %q", q.Get("order"))
	}
	if captured.Header.Get("apikey") != "test-key" {
		t.Error("apikey header missing")
	}
	if captured.Header.Get("Authorization") != "Bearer test-key" {
		t.Error("bearer header missing")
	}
}

func TestRelatedAttractions_NoLocationFilter(t *testing.T) {
	var captured *http.Request
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		json.NewEncoder(w).Encode([]Attraction{})
	})

	if _, err := c.RelatedAttractions(context.Background(), "x", "", 3); err != nil {
		t.Fatalf("RelatedAttractions: %v", err)
	}
	if captured.URL.Query().Has("location") {
		t.Error("empty location must not add a location filter")
	}
}

func TestNearbyAccommodations_ExcludesCurrent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Accommodation{
			{Slug: "pensiunea-ana", Title: "Pensiunea Ana"},
			{Slug: "hotel-carpati", Title: "Hotel Carpați"},
			{Slug: "vila-bran", Title: "Vila Bran"},
		})
	})

	got, err := c.NearbyAccommodations(context.Background(), "hotel-carpati", "Bran", 2)
	if err != nil {
		t.Fatalf("NearbyAccommodations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d, want 2", len(got))
	}
	for _, a := range got {
		if a.Slug == "hotel-carpati" {
			t.Error("current accommodation must be excluded")
		}
	}
}

func TestRelatedAttractions_RemoteError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.RelatedAttractions(context.Background(), "x", "Bran", 2)
	if err == nil {
		t.Fatal("remote 500 should surface as an error")
	}
}

func TestSearch_DiacriticInsensitive(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/attractions") {
			json.NewEncoder(w).Encode([]Attraction{
				{Slug: "castelul-bran", Name: "Castelul Bran", Location: "Bran"},
				{Slug: "salina-turda", Name: "Salina Turda", Location: "Turda"},
			})
			return
		}
		json.NewEncoder(w).Encode([]Accommodation{
			{Slug: "casa-brasoveana", Title: "Casa Brașoveană", Location: "Brașov"},
		})
	})

	got, err := c.Search(context.Background(), "brasov")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results %v, want 1", len(got), got)
	}
	if got[0].Slug != "casa-brasoveana" || got[0].Kind != "cazare" {
		t.Errorf("result = %+v", got[0])
	}
}

func TestWithoutCurrent_EmptyCandidates(t *testing.T) {
	got := withoutCurrent(nil, func(a Attraction) string { return a.Slug }, "x", 3)
	if len(got) != 0 {
		t.Errorf("got %d, want 0", len(got))
	}
}
