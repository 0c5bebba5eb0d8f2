// Package main runs the inventory service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"github.com/abgdnv/catalog/internal/inventory/app"
	"github.com/abgdnv/catalog/internal/inventory/config"
	"github.com/abgdnv/catalog/pkg/bootstrap"
	"github.com/abgdnv/catalog/pkg/config/configloader"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/abgdnv/catalog/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const serviceName = "inventory"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, opens the inventory store and serves HTTP and pprof until ctx is done.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName, configloader.WithDefaults(config.Defaults()))
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tracerProvider, err := telemetry.NewTracerProvider(ctx, "inventory-service", cfg.Telemetry)
	if err != nil {
		return err
	}
	meterProvider, err := telemetry.NewMeterProvider("inventory-service", registry)
	if err != nil {
		return err
	}

	storage, err := app.OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	deps := app.SetupDependencies(storage, app.NewProductClient(cfg, logger), cfg, registry, logger)
	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	server.ServeHTTP(gCtx, g, httpServer, cfg.Shutdown.Timeout, logger, "HTTP")

	if cfg.PProf.Enabled {
		// http.DefaultServeMux carries the net/http/pprof handlers
		pprofServer := &http.Server{Addr: cfg.PProf.Addr}
		server.ServeHTTP(gCtx, g, pprofServer, cfg.Shutdown.Timeout, logger, "Pprof")
	}

	server.ShutdownOnDone(gCtx, g, cfg.Shutdown.Timeout, logger, tracerProvider, meterProvider)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
