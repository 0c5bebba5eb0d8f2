// Package app contains the application setup for the ProductService.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/product/config"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/internal/product/transport/rest"
	"github.com/abgdnv/catalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const serviceName = "product-service"

type Dependencies struct {
	ProductService service.ProductService
	Ready          server.ReadinessCheck
	Metrics        prometheus.Gatherer
	PageLimits     web.PageLimits
	Logger         *slog.Logger
}

// Storage is the product store selected by the database configuration.
type Storage struct {
	Store store.ProductStore
	Ready server.ReadinessCheck
	Close func()
}

// OpenStorage connects to PostgreSQL and applies the migrations, or returns an in-memory store
// when the memory driver is configured.
func OpenStorage(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (*Storage, error) {
	if cfg.UsesMemory() {
		logger.Warn("Using in-memory product store, data will not survive a restart")
		return &Storage{Store: store.NewMemoryStore(), Close: func() {}}, nil
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout, cfg.Retry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if cfg.Migrations != "" {
		migrateURL, err := bootstrap.WithMigrationsTable(cfg.URL, "product_schema_migrations")
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

func SetupDependencies(storage *Storage, metrics prometheus.Gatherer, pageCfg pkgconfig.PaginationConfig, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(storage.Store),
		Ready:          storage.Ready,
		Metrics:        metrics,
		PageLimits:     web.PageLimits{DefaultSize: pageCfg.DefaultSize, MaxSize: pageCfg.MaxSize},
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the routes and middleware for the ProductService application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	server.RegisterProbes(mux, deps.Logger, deps.Ready)
	if deps.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", server.MetricsHandler(deps.Metrics))
	}
	rest.NewHandler(deps.ProductService, deps.PageLimits, deps.Logger).RegisterRoutes(mux)
	return server.Instrument(mux, serviceName)
}

// SetupHttpServer creates and configures an HTTP server for the ProductService application.
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

// SetupGrpcServer initializes the gRPC server, which exposes the standard health service.
func SetupGrpcServer(deps *Dependencies, healthServer *health.Server, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, server.HealthRegistration(healthServer))
}
