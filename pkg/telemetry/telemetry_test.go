package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewTracerProvider_Disabled(t *testing.T) {
	// given
	ctx := context.Background()

	// when
	tp, err := NewTracerProvider(ctx, "catalog-test", config.TelemetryConfig{})

	// then
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })
	_, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}

func Test_NewMeterProvider_ExposesInstruments(t *testing.T) {
	// given
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	mp, err := NewMeterProvider("catalog-test", reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	counter, err := mp.Meter("test").Int64Counter("catalog_test_events")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	// when
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "catalog_test_events_total")
}
