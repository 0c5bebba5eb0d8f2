// Package app contains the application setup for the inventory service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/inventory/client"
	"github.com/abgdnv/catalog/internal/inventory/config"
	"github.com/abgdnv/catalog/internal/inventory/service"
	"github.com/abgdnv/catalog/internal/inventory/store"
	"github.com/abgdnv/catalog/internal/inventory/transport/rest"
	"github.com/abgdnv/catalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "inventory-service"

type Dependencies struct {
	InventoryService service.InventoryService
	APIKey           string
	Ready            server.ReadinessCheck
	Metrics          prometheus.Gatherer
	Logger           *slog.Logger
}

// Storage is the inventory store selected by the database configuration.
type Storage struct {
	Store store.InventoryStore
	Ready server.ReadinessCheck
	Close func()
}

// OpenStorage connects to PostgreSQL and applies the migrations, or returns an in-memory store
// when the memory driver is configured.
func OpenStorage(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	if cfg.UsesMemory() {
		logger.Warn("Using in-memory inventory store, data will not survive a restart")
		return &Storage{Store: store.NewMemoryStore(), Close: func() {}}, nil
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout, cfg.Retry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if cfg.Migrations != "" {
		migrateURL, err := bootstrap.WithMigrationsTable(cfg.URL, "inventory_schema_migrations")
		if err != nil {
			dbPool.Close()
			return nil, err
		}
		if err := bootstrap.Migrate(ctx, migrateURL, cfg.Migrations, cfg.Retry, logger); err != nil {
			dbPool.Close()
			return nil, err
		}
	}
	logger.Info("Successfully connected to the database!")
	return &Storage{
		Store: store.NewPgStore(dbPool),
		Ready: func(ctx context.Context) error { return dbPool.Ping(ctx) },
		Close: dbPool.Close,
	}, nil
}

func SetupDependencies(storage *Storage, products service.ProductFinder, cfg *config.Config, metrics prometheus.Gatherer, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		InventoryService: service.NewService(products, storage.Store),
		APIKey:           cfg.Auth.APIKey,
		Ready:            storage.Ready,
		Metrics:          metrics,
		Logger:           logger,
	}
}

// NewProductClient builds the circuit-breaking client of the product service.
func NewProductClient(cfg *config.Config, logger *slog.Logger) *client.ProductClient {
	return client.NewProductClient(cfg.ProductService, cfg.CircuitBreaker, logger)
}

// SetupHttpHandler initializes the routes and middleware for the inventory service.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	server.RegisterProbes(mux, deps.Logger, deps.Ready)
	if deps.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", server.MetricsHandler(deps.Metrics))
	}
	rest.NewHandler(deps.InventoryService, deps.APIKey, deps.Logger).RegisterRoutes(mux)
	return server.Instrument(mux, serviceName)
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, SetupHttpHandler(deps))
}
