package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// ServeHTTP starts srv in g and shuts it down gracefully, bounded by timeout, once ctx is done.
func ServeHTTP(ctx context.Context, g *errgroup.Group, srv *http.Server, timeout time.Duration, logger *slog.Logger, name string) {
	g.Go(func() error {
		logger.Info(name+" server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// ServeGRPC listens on addr and serves srv in g. Once ctx is done it stops gracefully,
// forcing a stop when timeout elapses first. onStop runs before the graceful stop begins.
func ServeGRPC(ctx context.Context, g *errgroup.Group, srv *grpc.Server, addr string, timeout time.Duration, logger *slog.Logger, onStop func()) {
	g.Go(func() error {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", addr))
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server...")
		if onStop != nil {
			onStop()
		}
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server stopped gracefully.")
			return nil
		case <-time.After(timeout):
			logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
			srv.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})
}

// Shutdowner is implemented by the OpenTelemetry providers.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownOnDone flushes and stops each provider once ctx is done, bounded by timeout.
func ShutdownOnDone(ctx context.Context, g *errgroup.Group, timeout time.Duration, logger *slog.Logger, providers ...Shutdowner) {
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var errs []error
		for _, p := range providers {
			if err := p.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Telemetry provider shutdown failed", "error", err)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
