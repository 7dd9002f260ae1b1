package catalog

import "time"

// Attraction is a point of interest stored in the hosted backend. The
// service only reads these records, never writes them.
type Attraction struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	County    string    `json:"county,omitempty"`
	Category  string    `json:"category,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Accommodation is a lodging record from the hosted backend.
type Accommodation struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	County        string    `json:"county,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	PricePerNight float64   `json:"price_per_night,omitempty"`
	BookingURL    string    `json:"booking_url,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// AffiliateLink is a paid booking link shown in a widget zone.
type AffiliateLink struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Provider  string    `json:"provider"`
	Zone      string    `json:"zone"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdZone describes a named placement slot for affiliate content.
type AdZone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
