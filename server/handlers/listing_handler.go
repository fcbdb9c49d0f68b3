package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"dealtown/filter"
	"dealtown/logger"
	services "dealtown/service"
)

const (
	DAY_QUERY_ARG    = "day"
	WHEN_QUERY_ARG   = "when"
	TYPE_QUERY_ARG   = "type"
	LNG_QUERY_ARG    = "lng"
	RADIUS_ALL_VALUE = "all"
)

const locationNotice = "We couldn't get your location, so distance and time filters are off."

// ListingsResponse is the filtered page plus an optional dismissible notice.
type ListingsResponse struct {
	*filter.Result
	Notice string `json:"notice,omitempty"`
}

type TodayResponse struct {
	Day      time.Weekday `json:"day"`
	DayName  string       `json:"day_name"`
	ISODay   int          `json:"iso_day"`
	Timezone string       `json:"timezone"`
}

type ListingHandler struct {
	listings   *services.ListingService
	geoTimeout time.Duration
	log        *zap.Logger
}

func NewListingHandler(listings *services.ListingService, geoTimeout time.Duration, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listings:   listings,
		geoTimeout: geoTimeout,
		log:        logger.Component(log, "ListingHandler"),
	}
}

// GetDeals handles GET /v1/deals
func (h *ListingHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, filter.KindDeal)
}

// GetLunch handles GET /v1/lunch
func (h *ListingHandler) GetLunch(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, filter.KindLunch)
}

// GetHappyHours handles GET /v1/happy-hours
func (h *ListingHandler) GetHappyHours(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, filter.KindHappyHour)
}

// DealMe handles GET /v1/deal-me, the combined view across all kinds.
func (h *ListingHandler) DealMe(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, filter.KindAll)
}

// Today handles GET /v1/today
func (h *ListingHandler) Today(w http.ResponseWriter, r *http.Request) {
	day := h.listings.Today()
	writeJSON(w, h.log, http.StatusOK, TodayResponse{
		Day:      day,
		DayName:  day.String(),
		ISODay:   filter.ISOWeekday(day),
		Timezone: h.listings.Location().String(),
	})
}

func (h *ListingHandler) servePage(w http.ResponseWriter, r *http.Request, kind filter.Kind) {
	q, notice, err := h.parseQuery(r.Context(), r.URL.Query(), kind)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.listings.Page(r.Context(), q)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, ListingsResponse{Result: res, Notice: notice})
}

// parseQuery builds the filter query for a page. A failed location lookup is
// not an error: it turns into a notice and the radius and time filters are dropped.
func (h *ListingHandler) parseQuery(ctx context.Context, vals url.Values, kind filter.Kind) (filter.Query, string, error) {
	q := filter.Query{Kind: kind}

	day, err := parseDay(vals.Get(DAY_QUERY_ARG))
	if err != nil {
		return q, "", err
	}
	q.Day = day

	when, ok := filter.ParseWindowMode(vals.Get(WHEN_QUERY_ARG))
	if !ok {
		return q, "", errors.New("invalid argument " + WHEN_QUERY_ARG)
	}
	q.When = when

	radius, err := parseRadius(vals.Get(RADIUS_QUERY_ARG))
	if err != nil {
		return q, "", err
	}
	q.RadiusMeters = radius
	q.Strict = radius != nil || when != filter.WindowUnrestricted

	if kind == filter.KindAll {
		t, ok := filter.ParseKind(vals.Get(TYPE_QUERY_ARG))
		if !ok {
			return q, "", errors.New("invalid argument " + TYPE_QUERY_ARG)
		}
		q.TypeFilter = t
	}

	needsLocation := kind == filter.KindAll || radius != nil
	user, locErr := filter.Locate(ctx, queryLocator(vals), h.geoTimeout)
	if locErr == nil {
		q.User = user
		return q, "", nil
	}
	if !needsLocation {
		return q, "", nil
	}

	h.log.Debug("location unavailable", zap.Error(locErr))
	q.RadiusMeters = nil
	q.When = filter.WindowUnrestricted
	q.Strict = false
	return q, locationNotice, nil
}

// queryLocator reads the coordinate the browser resolved and sent along.
func queryLocator(vals url.Values) filter.Locator {
	return filter.LocatorFunc(func(ctx context.Context) (filter.Coord, error) {
		latStr := vals.Get(LAT_QUERY_ARG)
		lngStr := vals.Get(LNG_QUERY_ARG)
		if lngStr == "" {
			lngStr = vals.Get(LON_QUERY_ARG)
		}
		if latStr == "" || lngStr == "" {
			return filter.Coord{}, errors.New("no coordinate provided")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return filter.Coord{}, err
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return filter.Coord{}, err
		}
		return filter.Coord{Lat: lat, Lng: lng}, nil
	})
}

// parseDay accepts "today" (or nothing), 0..6 with 0=Sunday, or a day name.
func parseDay(s string) (*time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return nil, nil
	}
	d, ok := filter.NormalizeDay(s, filter.SchemeSun0)
	if !ok {
		return nil, errors.New("invalid argument " + DAY_QUERY_ARG)
	}
	return &d, nil
}

// parseRadius accepts meters or "all"; nil means the whole region.
func parseRadius(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, RADIUS_ALL_VALUE) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 1) {
		return nil, errors.New("invalid argument " + RADIUS_QUERY_ARG)
	}
	return &v, nil
}
