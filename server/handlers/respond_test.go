package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	services "dealtown/service"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		body       string
		retryAfter string
	}{
		{
			name:       "validation",
			err:        &services.ValidationError{Fields: map[string]string{"title": "title is required"}},
			statusCode: http.StatusBadRequest,
			body:       `{"error":"validation failed","fields":{"title":"title is required"}}`,
		},
		{
			name:       "throttled",
			err:        fmt.Errorf("submit: %w", &services.ThrottleError{RetryAfter: 90500 * time.Millisecond}),
			statusCode: http.StatusTooManyRequests,
			body:       `{"error":"too many submissions, try again later"}`,
			retryAfter: "91",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("approve: %w", services.ErrNotFound),
			statusCode: http.StatusNotFound,
			body:       `{"error":"not found"}`,
		},
		{
			name:       "other",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			body:       `{"error":"internal server error"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, zap.NewNop(), tt.err)
			assert.Equal(t, tt.statusCode, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
			assert.Equal(t, tt.retryAfter, rr.Header().Get("Retry-After"))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, zap.NewNop(), http.StatusOK, map[string]float64{"distance_meters": math.NaN()})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}
