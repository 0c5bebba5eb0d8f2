// Package config holds the inventory service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	Database       config.DatabaseConfig       `koanf:"database"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	ProductService config.HTTPClientConfig     `koanf:"product"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
	Auth           config.AuthConfig           `koanf:"auth"`
}

// Defaults are applied beneath config.yaml, .env and INVENTORY_* variables.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":                        3000,
		"server.maxheaderbytes":              1 << 20,
		"server.timeout.read":                "5s",
		"server.timeout.write":               "10s",
		"server.timeout.idle":                "120s",
		"server.timeout.readheader":          "2s",
		"database.driver":                    config.DriverPostgres,
		"database.timeout":                   "5s",
		"database.retry.attempts":            5,
		"database.retry.delay":               "5s",
		"log.level":                          "info",
		"shutdown.timeout":                   "10s",
		"product.url":                        "http://product-service:8080",
		"product.timeout":                    "3s",
		"circuitbreaker.maxrequests":         3,
		"circuitbreaker.interval":            "60s",
		"circuitbreaker.consecutivefailures": 5,
		"circuitbreaker.errorratepercent":    50,
		"circuitbreaker.opentimeout":         "5s",
	}
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.ProductService.String())
	b.WriteString(c.CircuitBreaker.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer, &c.Database, &c.Log, &c.PProf, &c.Shutdown, &c.Telemetry,
		&c.ProductService, &c.CircuitBreaker, &c.Auth,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("inventory config: %w", err)
		}
	}
	return nil
}
