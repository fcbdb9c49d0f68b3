package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealtown/filter"
	"dealtown/logger"
	"dealtown/metrics"
	"dealtown/models"
)

// ListingService loads listings with their venues and runs the page pipeline.
type ListingService struct {
	source ListingSource
	venues *VenueService
	loc    *time.Location
	clock  filter.Clock
	log    *zap.Logger
}

func NewListingService(source ListingSource, venues *VenueService, loc *time.Location, clock filter.Clock, log *zap.Logger) *ListingService {
	if clock == nil {
		clock = filter.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ListingService{
		source: source,
		venues: venues,
		loc:    loc,
		clock:  clock,
		log:    logger.Component(log, "ListingService"),
	}
}

func (s *ListingService) Location() *time.Location { return s.loc }

// Today is the canonical weekday in the service timezone.
func (s *ListingService) Today() time.Weekday {
	return filter.TodayIn(s.loc, s.clock.Now())
}

// Load fetches the listings of kind (all kinds for KindAll) and the venues in
// parallel, then attaches each listing's venue.
func (s *ListingService) Load(ctx context.Context, kind filter.Kind) ([]filter.Listing, error) {
	start := time.Now()
	defer func() {
		metrics.ListingLoadDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	kinds := []filter.Kind{kind}
	if kind == filter.KindAll {
		kinds = filter.Kinds
	}

	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var listings []filter.Listing
	for _, k := range kinds {
		g.Go(func() error {
			items, err := s.source.ListListings(gctx, k)
			if err != nil {
				return fmt.Errorf("failed to load %s listings: %w", k, err)
			}
			mu.Lock()
			listings = append(listings, items...)
			mu.Unlock()
			return nil
		})
	}

	var venues []models.VenueRecord
	g.Go(func() error {
		v, err := s.venues.GetVenues(gctx)
		if err != nil {
			return err
		}
		venues = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*filter.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v.ToVenue()
	}
	for i := range listings {
		if v, ok := byID[listings[i].VenueID]; ok {
			listings[i].Venue = v
		}
	}

	// goroutines finish in any order; keep the source order stable per kind
	ordered := make([]filter.Listing, 0, len(listings))
	for _, k := range kinds {
		for _, l := range listings {
			if l.Kind == k {
				ordered = append(ordered, l)
			}
		}
	}
	return ordered, nil
}

// Page runs the filter pipeline for q at the current instant.
func (s *ListingService) Page(ctx context.Context, q filter.Query) (*filter.Result, error) {
	kind := q.Kind
	if kind == "" {
		kind = filter.KindAll
	}
	listings, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}

	res := filter.Run(listings, q, s.clock.Now(), s.loc)
	reason := string(res.Reason)
	if reason == "" {
		reason = "none"
	}
	metrics.ListingRequests.WithLabelValues(string(kind), reason).Inc()

	s.log.Debug("page",
		zap.String("kind", string(kind)),
		zap.String("day", res.DayName),
		zap.Int("items", len(res.Items)),
		zap.String("fallback", reason))
	return &res, nil
}

// ListingCountsByVenue counts the active listings of every kind per venue.
func (s *ListingService) ListingCountsByVenue(ctx context.Context) (map[string]int, error) {
	listings, err := s.Load(ctx, filter.KindAll)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range listings {
		if l.VenueID != "" {
			counts[l.VenueID]++
		}
	}
	return counts, nil
}
