package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealtown_events_total",
			Help: "Pageview and click beacons received",
		},
		[]string{"type"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealtown_submissions_total",
			Help: "Deal submissions by outcome",
		},
		[]string{"status"},
	)

	ListingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealtown_listing_requests_total",
			Help: "Listing page requests by kind and fallback reason",
		},
		[]string{"kind", "fallback"},
	)

	ListingLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealtown_listing_load_duration_seconds",
			Help:    "Time spent loading listings and venues from the source",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	VenuesCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dealtown_venues_cached",
			Help: "Venues written to the cache by the last refresh",
		},
	)
)
