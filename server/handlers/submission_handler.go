package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"dealtown/logger"
	"dealtown/models"
	services "dealtown/service"
)

const maxBodyBytes = 64 << 10

type SubmissionHandler struct {
	submissions *services.SubmissionService
	clientIPs   *ClientIPResolver
	log         *zap.Logger
}

// NewSubmissionHandler throttles on the peer address unless clientIPs trusts it as a proxy.
func NewSubmissionHandler(submissions *services.SubmissionService, clientIPs *ClientIPResolver, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		clientIPs:   clientIPs,
		log:         logger.Component(log, "SubmissionHandler"),
	}
}

// Create handles POST /v1/submissions
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.submissions.Submit(r.Context(), req, h.clientIPs.ClientIP(r))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, sub)
}

// ListPending handles GET /admin/submissions
func (h *SubmissionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissions.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, subs)
}

// Approve handles POST /admin/submissions/{id}/approve
func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, sub)
}

// Reject handles POST /admin/submissions/{id}/reject
func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	sub, err := h.submissions.Reject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, sub)
}
