package models

import (
	"dealtown/filter"
)

// ListingRecord is a row from one of the listing tables, before normalization.
// Tables either carry a day array (Days) or a single day column (DayOfWeek).
type ListingRecord struct {
	ID         string        `json:"id"`
	VenueID    *string       `json:"venue_id"`
	Title      string        `json:"title"`
	Details    string        `json:"details"`
	PriceCents *int          `json:"price_cents"`
	Days       []interface{} `json:"days"`
	DayOfWeek  interface{}   `json:"day_of_week"`
	StartTime  *string       `json:"start_time"`
	EndTime    *string       `json:"end_time"`
	IsActive   bool          `json:"is_active"`
}

// ToListing normalizes the record using the scheme its table declares.
// Malformed times are dropped, which makes the listing match any time.
func (r ListingRecord) ToListing(kind filter.Kind, scheme filter.Scheme) filter.Listing {
	l := filter.Listing{
		ID:       r.ID,
		Kind:     kind,
		Title:    r.Title,
		Details:  r.Details,
		IsActive: r.IsActive,
		Start:    filter.ParseTimeOfDayPtr(r.StartTime),
		End:      filter.ParseTimeOfDayPtr(r.EndTime),
	}
	if r.VenueID != nil {
		l.VenueID = *r.VenueID
	}
	if r.PriceCents != nil && *r.PriceCents >= 0 {
		p := *r.PriceCents
		l.PriceCents = &p
	}

	switch {
	case r.Days != nil:
		l.Days = filter.NormalizeDayArray(r.Days, scheme)
	case r.DayOfWeek != nil && r.DayOfWeek != "":
		l.Days = filter.NormalizeDayArray([]interface{}{r.DayOfWeek}, scheme)
	default:
		l.Days = filter.EveryDay()
	}
	return l
}

// ListingTable describes where a listing kind lives and how it encodes days.
type ListingTable struct {
	Kind      filter.Kind
	Table     string
	DayColumn string
	// DayArray is true when DayColumn holds an array.
	DayArray bool
	Scheme   filter.Scheme
}

// ListingTables is the registry of listing sources. Every table declares its
// day scheme explicitly.
var ListingTables = map[filter.Kind]ListingTable{
	filter.KindDeal:      {Kind: filter.KindDeal, Table: "deals", DayColumn: "days", DayArray: true, Scheme: filter.SchemeSun0},
	filter.KindHappyHour: {Kind: filter.KindHappyHour, Table: "happy_hours", DayColumn: "days", DayArray: true, Scheme: filter.SchemeISO1},
	filter.KindLunch:     {Kind: filter.KindLunch, Table: "lunch_specials", DayColumn: "day_of_week", DayArray: false, Scheme: filter.SchemeName},
}
