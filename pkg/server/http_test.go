package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestRegisterProbes(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		check          ReadinessCheck
		expectedStatus int
	}{
		{name: "healthz always ok", path: "/healthz", check: func(context.Context) error { return errors.New("down") }, expectedStatus: http.StatusOK},
		{name: "readyz ok", path: "/readyz", check: func(context.Context) error { return nil }, expectedStatus: http.StatusOK},
		{name: "readyz failing", path: "/readyz", check: func(context.Context) error { return errors.New("down") }, expectedStatus: http.StatusServiceUnavailable},
		{name: "readyz without check", path: "/readyz", expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			mux := NewChiRouter(logger)
			RegisterProbes(mux, logger, tc.check)
			rr := httptest.NewRecorder()

			// when
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			// then
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	// given
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_probe_total"})
	reg.MustRegister(counter)
	counter.Inc()
	rr := httptest.NewRecorder()

	// when
	MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "catalog_probe_total 1")
}

func TestInstrument_RoutePattern(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := NewChiRouter(logger)
	mux.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	rctx := chi.NewRouteContext()
	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()

	// when
	Instrument(mux, "test").ServeHTTP(rr, req)

	// then
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/items/{id}", rctx.RoutePattern())
	assert.Equal(t, "/items/{id}", routePattern(req))
}
