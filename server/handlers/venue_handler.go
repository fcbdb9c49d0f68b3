package handlers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"dealtown/filter"
	"dealtown/logger"
	services "dealtown/service"
)

const (
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
)

type VenueHandler struct {
	venueService *services.VenueService
	log          *zap.Logger
}

func NewVenueHandler(venueService *services.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		venueService: venueService,
		log:          logger.Component(log, "VenueHandler"),
	}
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat=..&lng=..&radius=..
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lng, radius, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	venues, err := h.venueService.GetVenuesNearby(r.Context(), lat, lng, radius)
	if err != nil {
		h.log.Error("error loading nearby venues", zap.Error(err))
		writeError(w, h.log, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, h.log, http.StatusOK, venues)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (lat, lng, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil || !filter.ValidLatitude(lat) {
		writeError(w, h.log, http.StatusBadRequest, "invalid argument "+LAT_QUERY_ARG)
		return
	}
	lngArg := LNG_QUERY_ARG
	if vals.Get(lngArg) == "" {
		lngArg = LON_QUERY_ARG
	}
	lng, err = parseArgFloat64(vals, lngArg)
	if err != nil || !filter.ValidLongitude(lng) {
		writeError(w, h.log, http.StatusBadRequest, "invalid argument "+LNG_QUERY_ARG)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil || !(radius > 0) || math.IsInf(radius, 1) {
		writeError(w, h.log, http.StatusBadRequest, "invalid argument "+RADIUS_QUERY_ARG)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	return strconv.ParseFloat(vals.Get(name), 64)
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "pong"})
}
