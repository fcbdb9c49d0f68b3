package models

import (
	"fmt"

	"dealtown/filter"
)

// VenueRecord is a venue row as stored in Postgres and cached in Redis.
type VenueRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	WebsiteURL string   `json:"website_url"`
}

// HasLocation reports whether both coordinates are present.
func (v VenueRecord) HasLocation() bool {
	return v.Lat != nil && v.Lng != nil
}

func (v VenueRecord) ToVenue() *filter.Venue {
	out := &filter.Venue{
		ID:         v.ID,
		Name:       v.Name,
		Address:    v.Address,
		WebsiteURL: v.WebsiteURL,
	}
	if v.HasLocation() {
		out.Location = &filter.Coord{Lat: *v.Lat, Lng: *v.Lng}
	}
	return out
}

func (v *VenueRecord) ToString() string {
	if !v.HasLocation() {
		return fmt.Sprintf("Venue(id=%s, name=%s, address=%s)", v.ID, v.Name, v.Address)
	}
	return fmt.Sprintf("Venue(id=%s, name=%s, address=%s, lat=%f, lng=%f)",
		v.ID, v.Name, v.Address, *v.Lat, *v.Lng)
}
