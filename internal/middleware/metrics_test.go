package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillup/internal/metrics"
)

type requestRecord struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	metrics.Nop
	mu       sync.Mutex
	requests []requestRecord
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, requestRecord{method, route, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Post("/api/goals/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/goals/7/complete", nil),
		httptest.NewRequest(http.MethodGet, "/healthz", nil),
		httptest.NewRequest(http.MethodGet, "/nope", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, rec.requests, 3)
	assert.Equal(t, requestRecord{"POST", "/api/goals/{id}/complete", http.StatusConflict}, rec.requests[0])
	assert.Equal(t, requestRecord{"GET", "/healthz", http.StatusOK}, rec.requests[1])
	assert.Equal(t, http.StatusNotFound, rec.requests[2].status)
}
