package server

import (
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dealtown/logger"
	"dealtown/server/handlers"
)

// RouterOptions are the access controls applied to the route groups.
type RouterOptions struct {
	AdminAPIKey             string
	PublicRequestsPerSecond int
	AdminRequestsPerMinute  int
}

type Router struct {
	venueHandler      *handlers.VenueHandler
	listingHandler    *handlers.ListingHandler
	submissionHandler *handlers.SubmissionHandler
	analyticsHandler  *handlers.AnalyticsHandler
	adminHandler      *handlers.AdminHandler
	router            *mux.Router
	opts              RouterOptions
	log               *zap.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	venueHandler *handlers.VenueHandler,
	listingHandler *handlers.ListingHandler,
	submissionHandler *handlers.SubmissionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	adminHandler *handlers.AdminHandler,
	router *mux.Router,
	opts RouterOptions,
	log *zap.Logger) *Router {
	return &Router{
		venueHandler:      venueHandler,
		listingHandler:    listingHandler,
		submissionHandler: submissionHandler,
		analyticsHandler:  analyticsHandler,
		adminHandler:      adminHandler,
		router:            router,
		opts:              opts,
		log:               logger.Component(log, "Router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(accessLogMiddleware(r.log))

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	public := r.router.PathPrefix("/v1").Subrouter()
	if r.opts.PublicRequestsPerSecond > 0 {
		public.Use(httprate.LimitByIP(r.opts.PublicRequestsPerSecond, time.Second))
	}
	// expects ?lat={latitude(float)}&lng={longitude(float)}&radius={meters(float)}
	public.HandleFunc("/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	// listing pages accept ?day=&when=&radius=&lat=&lng= and, for deal-me, &type=
	public.HandleFunc("/deals", r.listingHandler.GetDeals).Methods("GET")
	public.HandleFunc("/lunch", r.listingHandler.GetLunch).Methods("GET")
	public.HandleFunc("/happy-hours", r.listingHandler.GetHappyHours).Methods("GET")
	public.HandleFunc("/deal-me", r.listingHandler.DealMe).Methods("GET")
	public.HandleFunc("/today", r.listingHandler.Today).Methods("GET")
	public.HandleFunc("/submissions", r.submissionHandler.Create).Methods("POST")
	public.HandleFunc("/events", r.analyticsHandler.Record).Methods("POST")

	admin := r.router.PathPrefix("/admin").Subrouter()
	if r.opts.AdminRequestsPerMinute > 0 {
		admin.Use(httprate.LimitByIP(r.opts.AdminRequestsPerMinute, time.Minute))
	}
	admin.Use(adminKeyMiddleware(r.opts.AdminAPIKey))
	admin.HandleFunc("/submissions", r.submissionHandler.ListPending).Methods("GET")
	admin.HandleFunc("/submissions/{id}/approve", r.submissionHandler.Approve).Methods("POST")
	admin.HandleFunc("/submissions/{id}/reject", r.submissionHandler.Reject).Methods("POST")
	admin.HandleFunc("/venues/refresh", r.adminHandler.RefreshVenues).Methods("POST")
	admin.HandleFunc("/analytics", r.analyticsHandler.Daily).Methods("GET")
	admin.HandleFunc("/map", r.adminHandler.DealMap).Methods("GET")
}
