package models

type EventType string

const (
	EventPageview EventType = "pageview"
	EventClick    EventType = "click"
)

// EventRequest is a single pageview or click beacon.
type EventRequest struct {
	Type      EventType `json:"type" validate:"required,oneof=pageview click"`
	Path      string    `json:"path" validate:"required,startswith=/,max=300"`
	ListingID string    `json:"listing_id" validate:"omitempty,max=64"`
	VenueID   string    `json:"venue_id" validate:"omitempty,max=64"`
}

// DailyCounts are the collected counters for one civil date.
type DailyCounts struct {
	Date   string           `json:"date"`
	Counts map[string]int64 `json:"counts"`
}
