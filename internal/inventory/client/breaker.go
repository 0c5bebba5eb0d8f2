package client

import (
	"context"
	"errors"
	"log/slog"

	inverrors "github.com/abgdnv/catalog/internal/inventory/errors"
	"github.com/abgdnv/catalog/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// newCircuitBreaker trips on consecutive failures or on the failure rate within an interval.
// A missing product is an answer, not a failure.
func newCircuitBreaker(cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[Product] {
	st := gobreaker.Settings{
		Name:        "product-service-cb",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				return true
			}
			total := counts.TotalSuccesses + counts.TotalFailures
			return cfg.ErrorRatePercent > 0 && total >= cfg.ConsecutiveFailures &&
				float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, inverrors.ErrProductNotFound) ||
				errors.Is(err, context.Canceled)
		},
	}
	return gobreaker.NewCircuitBreaker[Product](st)
}
