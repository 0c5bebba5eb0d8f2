// Package client calls the product service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	inverrors "github.com/abgdnv/catalog/internal/inventory/errors"
	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/jsonapi"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Product is the part of a product the inventory service reads.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

type productAttributes struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

// ProductClient reads products from the product service through a circuit breaker.
type ProductClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[Product]
	logger     *slog.Logger
}

func NewProductClient(cfg config.HTTPClientConfig, cbCfg config.CircuitBreakerConfig, logger *slog.Logger) *ProductClient {
	logger = logger.With("component", "product-client")
	return &ProductClient{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: newCircuitBreaker(cbCfg, logger),
		logger:  logger,
	}
}

// FindByID fetches a product. It returns ErrProductNotFound on 404, ErrCircuitOpen while the
// breaker rejects calls and ErrProductServiceUnavailable for any other failure.
func (c *ProductClient) FindByID(ctx context.Context, id int64) (Product, error) {
	product, err := c.breaker.Execute(func() (Product, error) {
		return c.fetch(ctx, id)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Product{}, fmt.Errorf("%w: %w", inverrors.ErrCircuitOpen, err)
	}
	return product, err
}

func (c *ProductClient) fetch(ctx context.Context, id int64) (Product, error) {
	target, err := url.JoinPath(c.baseURL, "api", "v1", "products", strconv.FormatInt(id, 10))
	if err != nil {
		return Product{}, fmt.Errorf("failed to build product URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Product{}, fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(web.XAPIKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("%w: %w", inverrors.ErrProductServiceUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "Failed to close product response body", "error", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Product{}, inverrors.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return Product{}, fmt.Errorf("%w: unexpected status %d", inverrors.ErrProductServiceUnavailable, resp.StatusCode)
	}

	var doc jsonapi.Document[jsonapi.Resource[productAttributes]]
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Product{}, fmt.Errorf("%w: failed to decode product: %w", inverrors.ErrProductServiceUnavailable, err)
	}
	if doc.Data == nil {
		return Product{}, fmt.Errorf("%w: product response has no data", inverrors.ErrProductServiceUnavailable)
	}
	return toProduct(*doc.Data)
}

func toProduct(r jsonapi.Resource[productAttributes]) (Product, error) {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil {
		return Product{}, fmt.Errorf("%w: invalid product id %q", inverrors.ErrProductServiceUnavailable, r.ID)
	}
	var price decimal.Decimal
	if r.Attributes.Price != "" {
		if price, err = decimal.NewFromString(r.Attributes.Price.String()); err != nil {
			return Product{}, fmt.Errorf("%w: invalid product price %q", inverrors.ErrProductServiceUnavailable, r.Attributes.Price)
		}
	}
	return Product{ID: id, Name: r.Attributes.Name, Price: price}, nil
}
