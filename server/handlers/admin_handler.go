package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"dealtown/logger"
	services "dealtown/service"
	"dealtown/util"
)

type AdminHandler struct {
	refresher *services.VenuesRefresherService
	venues    *services.VenueService
	listings  *services.ListingService
	log       *zap.Logger
}

func NewAdminHandler(
	refresher *services.VenuesRefresherService,
	venues *services.VenueService,
	listings *services.ListingService,
	log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		venues:    venues,
		listings:  listings,
		log:       logger.Component(log, "AdminHandler"),
	}
}

// RefreshVenues handles POST /admin/venues/refresh
func (h *AdminHandler) RefreshVenues(w http.ResponseWriter, r *http.Request) {
	n, err := h.refresher.RefreshVenuesData(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]int{"refreshed": n})
}

// DealMap handles GET /admin/map, an HTML scatter of venues sized by active listings.
func (h *AdminHandler) DealMap(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.GetVenues(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	counts, err := h.listings.ListingCountsByVenue(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := util.RenderDealMap(&buf, venues, counts); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("error writing map", zap.Error(err))
	}
}
