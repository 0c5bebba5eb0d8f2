// Package bootstrap creates the process-wide resources shared by the services.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/logger"
	"github.com/cenkalti/backoff/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewLogger creates a JSON slog.Logger on stdout with the specified log level.
func NewLogger(level string) *slog.Logger {
	return logger.New(level, os.Stdout)
}

// NewDbPool creates a new database connection pool and pings it, failing early when the database is unreachable.
// The ping is repeated as configured by policy, each attempt bounded by connectTimeout.
func NewDbPool(ctx context.Context, url string, connectTimeout time.Duration, policy config.RetryConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	dbPool, errPool := pgxpool.New(ctx, url)
	if errPool != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", errPool)
	}
	err := Retry(ctx, policy, log, "database ping", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return dbPool.Ping(pingCtx)
	})
	if err != nil {
		dbPool.Close()
		return nil, err
	}
	return dbPool, nil
}

// Migrate applies every pending migration found in the migrations directory to the database at url.
// Connecting is retried as configured by policy; a failing migration is not.
// An up-to-date schema is not an error.
func Migrate(ctx context.Context, url, migrationsPath string, policy config.RetryConfig, log *slog.Logger) error {
	var m *migrate.Migrate
	err := Retry(ctx, policy, log, "migration setup", func(context.Context) error {
		var err error
		m, err = migrate.New("file://"+migrationsPath, url)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("failed to close migrate instance", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("database schema is up to date", "path", migrationsPath)
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Info("migrations applied", "path", migrationsPath, "version", version, "dirty", dirty)
	return nil
}

// Retry runs op until it succeeds, policy.Attempts tries are used up or ctx is done,
// waiting policy.Delay between tries. The last error is returned.
func Retry(ctx context.Context, policy config.RetryConfig, log *slog.Logger, step string, op func(context.Context) error) error {
	attempts := max(policy.Attempts, 1)
	tries := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		tries++
		return struct{}{}, op(ctx)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(policy.Delay)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WarnContext(ctx, "Startup step failed, retrying", "step", step, "attempt", tries, "max_attempts", attempts, "retry_in", next, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%s failed after %d attempt(s): %w", step, tries, err)
	}
	return nil
}

// WithMigrationsTable points golang-migrate at its own version table, so several
// services can keep their schemas in one database.
func WithMigrationsTable(dbURL, table string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
