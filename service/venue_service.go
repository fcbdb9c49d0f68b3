package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dealtown/dao/redis"
	"dealtown/filter"
	"dealtown/logger"
	"dealtown/models"
)

// ListingSource is where listings and venues are read from: Postgres in
// production, JSON fixtures elsewhere.
type ListingSource interface {
	ListListings(ctx context.Context, kind filter.Kind) ([]filter.Listing, error)
	ListVenues(ctx context.Context) ([]models.VenueRecord, error)
}

// NearbyVenue is a venue with its distance from the query point.
type NearbyVenue struct {
	models.VenueRecord
	DistanceMeters float64 `json:"distance_meters"`
	DistanceLabel  string  `json:"distance_label"`
}

type VenueService struct {
	venueDao *redis.RedisVenueDAO
	source   ListingSource
	log      *zap.Logger
}

// NewVenueService constructs a VenueService reading through the Redis cache.
func NewVenueService(venueDao *redis.RedisVenueDAO, source ListingSource, log *zap.Logger) *VenueService {
	if log == nil {
		log = zap.NewNop()
	}
	return &VenueService{
		venueDao: venueDao,
		source:   source,
		log:      logger.Component(log, "VenueService"),
	}
}

// GetVenuesNearby returns cached venues within radius meters, nearest first.
func (vs *VenueService) GetVenuesNearby(ctx context.Context, lat, lng, radius float64) ([]NearbyVenue, error) {
	venues, err := vs.venueDao.GetNearbyVenues(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}
	out := make([]NearbyVenue, 0, len(venues))
	for _, v := range venues {
		d := filter.DistanceMeters(filter.Coord{Lat: lat, Lng: lng}, filter.Coord{Lat: *v.Lat, Lng: *v.Lng})
		out = append(out, NearbyVenue{VenueRecord: v, DistanceMeters: d, DistanceLabel: filter.FormatDistanceBucket(d)})
	}
	return out, nil
}

// GetVenues reads the cache and falls back to the source when it is empty or unreachable.
func (vs *VenueService) GetVenues(ctx context.Context) ([]models.VenueRecord, error) {
	venues, err := vs.venueDao.GetVenues(ctx)
	if err != nil {
		vs.log.Warn("venue cache read failed, using source", zap.Error(err))
	} else if len(venues) > 0 {
		return venues, nil
	}

	venues, err = vs.source.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}
	return venues, nil
}

func (vs *VenueService) GetVenue(ctx context.Context, id string) (*models.VenueRecord, error) {
	return vs.venueDao.GetVenue(ctx, id)
}
