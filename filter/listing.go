package filter

import (
	"fmt"
	"strings"
)

// Kind is the listing type shown on a page.
type Kind string

const (
	KindDeal      Kind = "deal"
	KindLunch     Kind = "lunch"
	KindHappyHour Kind = "happy_hour"
	// KindAll is the combined Deal Me view.
	KindAll Kind = "all"
)

// Kinds lists the concrete listing kinds.
var Kinds = []Kind{KindDeal, KindLunch, KindHappyHour}

// ParseKind accepts the kind names plus a few URL-friendly aliases.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deal", "deals", "daily":
		return KindDeal, true
	case "lunch", "lunch_special", "lunch-special":
		return KindLunch, true
	case "happy_hour", "happy-hour", "happyhour", "happy-hours":
		return KindHappyHour, true
	case "", "all":
		return KindAll, true
	}
	return "", false
}

// Venue is the read-only venue view the core needs.
type Venue struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Location   *Coord `json:"location,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// Listing is a deal, lunch special or happy hour in normalized form.
type Listing struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	VenueID    string     `json:"venue_id,omitempty"`
	Venue      *Venue     `json:"venue,omitempty"`
	Title      string     `json:"title,omitempty"`
	Details    string     `json:"details,omitempty"`
	PriceCents *int       `json:"price_cents"`
	Days       DaySpec    `json:"days"`
	Start      *TimeOfDay `json:"-"`
	End        *TimeOfDay `json:"-"`
	IsActive   bool       `json:"is_active"`
}

// VenueName is empty when no venue is attached.
func (l Listing) VenueName() string {
	if l.Venue == nil {
		return ""
	}
	return l.Venue.Name
}

// Match is a listing that survived filtering, annotated for presentation.
type Match struct {
	Listing
	StartTime      string   `json:"start_time,omitempty"`
	EndTime        string   `json:"end_time,omitempty"`
	PriceLabel     string   `json:"price_label,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	DistanceLabel  string   `json:"distance_label,omitempty"`
}

// FormatPrice renders cents as dollars, e.g. 1500 -> "$15.00". Nil renders empty.
func FormatPrice(cents *int) string {
	if cents == nil {
		return ""
	}
	c := *cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
