package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"dealtown/db"
	"dealtown/models"
)

const VENUES_GEO_KEY_V1 = "venues_geo_v1"
const VENUES_PLACE_MEMBER_FORMAT_V1 = "venues_place_v1:%s"

// RedisVenueDAO caches venues as JSON plus a geo index for those with coordinates.
type RedisVenueDAO struct {
	client db.RedisClient
	log    *zap.Logger
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient, log *zap.Logger) *RedisVenueDAO {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisVenueDAO{client: client, log: log.With(zap.String("component", "RedisVenueDAO"))}
}

func venueKey(id string) string {
	return fmt.Sprintf(VENUES_PLACE_MEMBER_FORMAT_V1, id)
}

// UpsertVenue stores the venue JSON. Venues with coordinates also join the geo index.
func (dao *RedisVenueDAO) UpsertVenue(ctx context.Context, v models.VenueRecord) error {
	key := venueKey(v.ID)
	if v.HasLocation() {
		return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, key, *v.Lat, *v.Lng, v)
	}

	// A venue may have lost its coordinates since the last refresh.
	if err := dao.client.RemoveLocation(ctx, VENUES_GEO_KEY_V1, key); err != nil {
		return fmt.Errorf("failed to clear geo entry for venue %s: %w", v.ID, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal venue %s: %w", v.ID, err)
	}
	if err := dao.client.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to set venue in redis: %w", err)
	}
	return nil
}

// GetVenue returns nil, nil on a cache miss.
func (dao *RedisVenueDAO) GetVenue(ctx context.Context, id string) (*models.VenueRecord, error) {
	str, err := dao.client.Get(ctx, venueKey(id))
	if errors.Is(err, db.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue from redis: %w", err)
	}
	var v models.VenueRecord
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &v, nil
}

// GetVenues returns every cached venue ordered by ID.
func (dao *RedisVenueDAO) GetVenues(ctx context.Context) ([]models.VenueRecord, error) {
	ids, err := dao.ListAllVenueIDs(ctx)
	if err != nil {
		return nil, err
	}
	venues := make([]models.VenueRecord, 0, len(ids))
	for _, id := range ids {
		v, err := dao.GetVenue(ctx, id)
		if err != nil {
			return nil, err
		}
		// expired or deleted between KEYS and GET
		if v == nil {
			continue
		}
		venues = append(venues, *v)
	}
	return venues, nil
}

// GetNearbyVenues retrieves nearby venues within a given radius (in meters), nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(ctx context.Context, lat, lng, radiusMeters float64) ([]models.VenueRecord, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(ctx, VENUES_GEO_KEY_V1, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby venues: %w", err)
	}

	venues := make([]models.VenueRecord, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	dao.log.Debug("nearby venues", zap.Int("count", len(venues)), zap.Float64("radius_m", radiusMeters))
	return venues, nil
}

func (dao *RedisVenueDAO) DeleteVenue(ctx context.Context, id string) error {
	if err := dao.client.RemoveLocation(ctx, VENUES_GEO_KEY_V1, venueKey(id)); err != nil {
		return fmt.Errorf("failed to delete venue %s: %w", id, err)
	}
	dao.log.Info("deleted venue cache", zap.String("venue_id", id))
	return nil
}

// ListAllVenueIDs returns all cached venue IDs, sorted.
func (dao *RedisVenueDAO) ListAllVenueIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, venueKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list venue keys: %w", err)
	}
	prefix := venueKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	sort.Strings(ids)
	return ids, nil
}
