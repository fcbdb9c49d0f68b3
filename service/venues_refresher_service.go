package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dealtown/dao/redis"
	"dealtown/logger"
	"dealtown/metrics"
)

// VenuesRefresherService periodically copies venues from the listing source
// into the Redis cache.
type VenuesRefresherService struct {
	venueDao *redis.RedisVenueDAO
	source   ListingSource
	log      *zap.Logger
}

// NewVenuesRefresherService constructs a new Refresher with dependencies.
func NewVenuesRefresherService(venueDao *redis.RedisVenueDAO, source ListingSource, log *zap.Logger) *VenuesRefresherService {
	if log == nil {
		log = zap.NewNop()
	}
	return &VenuesRefresherService{
		venueDao: venueDao,
		source:   source,
		log:      logger.Component(log, "VenuesRefresherService"),
	}
}

// StartPeriodicJob launches the background loop at the given interval until ctx is done.
func (vr *VenuesRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go vr.startPeriodicJob(ctx, interval)
}

func (vr *VenuesRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			vr.log.Info("periodic venues refresher stopped")
			return
		case <-ticker.C:
			vr.log.Info("running periodic venues refresher job")
			if _, err := vr.RefreshVenuesData(ctx); err != nil {
				vr.log.Error("RefreshVenuesData returned error", zap.Error(err))
			}
		}
	}
}

// RefreshVenuesData upserts every source venue, drops cached venues the source
// no longer has, and returns how many venues were written.
func (vr *VenuesRefresherService) RefreshVenuesData(ctx context.Context) (int, error) {
	venues, err := vr.source.ListVenues(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list source venues: %w", err)
	}

	seen := make(map[string]struct{}, len(venues))
	written := 0
	for _, v := range venues {
		if v.ID == "" {
			vr.log.Warn("skipping venue without id", zap.String("name", v.Name))
			continue
		}
		if _, dup := seen[v.ID]; dup {
			vr.log.Warn("skipping duplicate venue", zap.String("venue_id", v.ID))
			continue
		}
		seen[v.ID] = struct{}{}

		if err := vr.venueDao.UpsertVenue(ctx, v); err != nil {
			vr.log.Error("upsert failed", zap.String("venue_id", v.ID), zap.Error(err))
			continue
		}
		written++
	}

	cached, err := vr.venueDao.ListAllVenueIDs(ctx)
	if err != nil {
		return written, fmt.Errorf("failed to list cached venues: %w", err)
	}
	removed := 0
	for _, id := range cached {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := vr.venueDao.DeleteVenue(ctx, id); err != nil {
			vr.log.Error("failed to delete stale venue", zap.String("venue_id", id), zap.Error(err))
			continue
		}
		removed++
	}

	metrics.VenuesCached.Set(float64(written))
	vr.log.Info("venues refreshed", zap.Int("written", written), zap.Int("removed", removed))
	return written, nil
}
