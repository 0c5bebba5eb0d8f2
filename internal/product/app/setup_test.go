package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/catalog/internal/product/store"
	pkgconfig "github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T, ready func(context.Context) error) *Dependencies {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storage := &Storage{Store: store.NewMemoryStore(), Ready: ready, Close: func() {}}
	return SetupDependencies(storage, prometheus.NewRegistry(), pkgconfig.PaginationConfig{DefaultSize: 20, MaxSize: 2000}, logger)
}

func TestOpenStorage_Memory(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// when
	storage, err := OpenStorage(context.Background(), pkgconfig.DatabaseConfig{Driver: pkgconfig.DriverMemory}, logger)

	// then
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, storage.Store)
	assert.Nil(t, storage.Ready)
	storage.Close()
}

func TestSetupHttpHandler_Routes(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		ready          func(context.Context) error
		expectedStatus int
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "readyz failing", method: http.MethodGet, path: "/readyz", ready: func(context.Context) error { return errors.New("db down") }, expectedStatus: http.StatusServiceUnavailable},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "list products", method: http.MethodGet, path: "/api/v1/products", expectedStatus: http.StatusOK},
		{name: "create product", method: http.MethodPost, path: "/api/v1/products", body: `{"name":"Laptop","price":1200}`, expectedStatus: http.StatusCreated},
		{name: "unknown product", method: http.MethodGet, path: "/api/v1/products/5", expectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			handler := SetupHttpHandler(newTestDeps(t, tc.ready))
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			handler.ServeHTTP(rr, req)

			// then
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestSetupHttpHandler_ExposesDomainMetrics(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	mp, err := telemetry.NewMeterProvider("product-service-test", registry)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	storage := &Storage{Store: store.NewMemoryStore(), Close: func() {}}
	handler := SetupHttpHandler(SetupDependencies(storage, registry, pkgconfig.PaginationConfig{DefaultSize: 20, MaxSize: 2000}, logger))

	// when
	created := httptest.NewRecorder()
	handler.ServeHTTP(created, httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Laptop","price":1200}`)))
	metrics := httptest.NewRecorder()
	handler.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// then
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "products_created")
	assert.Contains(t, metrics.Body.String(), "http_server_request")
}
