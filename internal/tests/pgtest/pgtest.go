// Package pgtest starts a throwaway PostgreSQL container for integration and end-to-end tests.
package pgtest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/abgdnv/catalog/pkg/bootstrap"
	"github.com/abgdnv/catalog/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Database is a running container with an open pool.
type Database struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SkipIfRequested skips t when the named environment variable is set to 1.
func SkipIfRequested(t *testing.T, envVar string) {
	t.Helper()
	if os.Getenv(envVar) == "1" {
		t.Skip("Skipping tests based on " + envVar + " env var")
	}
}

// MigrationsDir returns the absolute path of migrations/<name> at the repository root.
func MigrationsDir(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations", name)
}

// Start runs a PostgreSQL container, waits for it to accept connections and applies the given migration sets.
func Start(ctx context.Context, t *testing.T, logger *slog.Logger, migrations ...string) *Database {
	t.Helper()
	// 1. Start a PostgreSQL container. Wait for the container to be ready.
	container, err := postgres.Run(ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(t, err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string from container")

	// 3. Create a pool and ping until the database answers
	retry := config.RetryConfig{Attempts: 10, Delay: 2 * time.Second}
	pool, err := bootstrap.NewDbPool(ctx, connStr, 5*time.Second, retry, logger)
	require.NoError(t, err, "Failed to connect to PostgreSQL after retries")

	// 4. Database migration
	for _, name := range migrations {
		migrateURL, err := bootstrap.WithMigrationsTable(connStr, name+"_schema_migrations")
		require.NoError(t, err)
		require.NoError(t, bootstrap.Migrate(ctx, migrateURL, MigrationsDir(name), retry, logger), "Failed to apply migrations")
	}

	return &Database{Container: container, Pool: pool, ConnStr: connStr}
}

// Close releases the pool and terminates the container.
func (d *Database) Close(ctx context.Context, logger *slog.Logger) {
	if d == nil {
		return
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Container != nil {
		if err := d.Container.Terminate(ctx); err != nil {
			logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}
