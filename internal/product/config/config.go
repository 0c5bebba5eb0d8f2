// Package config holds the product service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Pagination config.PaginationConfig `koanf:"pagination"`
}

// Defaults are applied beneath config.yaml, .env and PRODUCT_* variables.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxheaderbytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "120s",
		"server.timeout.readheader": "2s",
		"database.driver":           config.DriverPostgres,
		"database.timeout":          "5s",
		"database.retry.attempts":   5,
		"database.retry.delay":      "5s",
		"log.level":                 "info",
		"grpc.enabled":              true,
		"grpc.port":                 "9090",
		"shutdown.timeout":          "10s",
		"pagination.defaultsize":    20,
		"pagination.maxsize":        2000,
	}
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Pagination.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer, &c.Database, &c.Log, &c.PProf, &c.GRPC, &c.Shutdown, &c.Telemetry, &c.Pagination,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("product config: %w", err)
		}
	}
	return nil
}
