package fixture

import (
	"context"
	"fmt"

	"dealtown/config"
	"dealtown/filter"
	"dealtown/models"
	"dealtown/util"
)

var listingResources = map[filter.Kind]string{
	filter.KindDeal:      config.DEALS_RESOURCE,
	filter.KindHappyHour: config.HAPPY_HOURS_RESOURCE,
	filter.KindLunch:     config.LUNCH_SPECIALS_RESOURCE,
}

// ListingSource serves listings and venues from the JSON files in a resources
// directory. Files are read on every call so edits show up without a restart.
type ListingSource struct {
	dir string
}

func NewListingSource(dir string) *ListingSource {
	return &ListingSource{dir: dir}
}

// ListListings applies the same day schemes and is_active filter as the database.
func (s *ListingSource) ListListings(ctx context.Context, kind filter.Kind) ([]filter.Listing, error) {
	table, ok := models.ListingTables[kind]
	if !ok {
		return nil, fmt.Errorf("no listing table for kind %q", kind)
	}
	records, err := util.ReadListingRecordsFromJSON(config.GetResourcePath(s.dir, listingResources[kind]))
	if err != nil {
		return nil, err
	}
	var out []filter.Listing
	for _, r := range records {
		if !r.IsActive {
			continue
		}
		out = append(out, r.ToListing(kind, table.Scheme))
	}
	return out, nil
}

func (s *ListingSource) ListVenues(ctx context.Context) ([]models.VenueRecord, error) {
	return util.ReadVenueRecordsFromJSON(config.GetResourcePath(s.dir, config.VENUES_RESOURCE))
}
