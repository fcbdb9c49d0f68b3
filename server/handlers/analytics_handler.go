package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"dealtown/logger"
	"dealtown/models"
	services "dealtown/service"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	log       *zap.Logger
}

func NewAnalyticsHandler(analytics *services.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		log:       logger.Component(log, "AnalyticsHandler"),
	}
}

// Record handles POST /v1/events
func (h *AnalyticsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var ev models.EventRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.analytics.Record(r.Context(), ev); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Daily handles GET /admin/analytics?date=YYYY-MM-DD
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	counts, err := h.analytics.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, counts)
}
