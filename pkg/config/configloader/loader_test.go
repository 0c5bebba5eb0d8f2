package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	HTTP struct {
		Port    int           `koanf:"port"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"http"`
	Name string `koanf:"name"`
}

func (c *testConfig) Validate() error {
	if c.HTTP.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_Precedence(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", "log:\n  level: debug\nhttp:\n  port: 8080\n  timeout: 5s\nname: from-yaml\n")
	envPath := writeFile(t, dir, ".env", "TESTSVC_HTTP_PORT=9090\nOTHER_NAME=ignored\n")
	t.Setenv("TESTSVC_NAME", "from-env")

	// when
	cfg, err := Load[*testConfig]("testsvc",
		WithConfigFile(yamlPath),
		WithEnvFile(envPath),
		WithDefaults(map[string]any{"log.level": "info", "http.timeout": "1s"}),
	)

	// then
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "from-env", cfg.Name)
}

func Test_Load_DefaultsOnly(t *testing.T) {
	// given
	dir := t.TempDir()

	// when
	cfg, err := Load[*testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "missing.yaml")),
		WithEnvFile(filepath.Join(dir, "missing.env")),
		WithDefaults(map[string]any{"http.port": 7000, "http.timeout": "2s"}),
	)

	// then
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
}

func Test_Load_ValidationError(t *testing.T) {
	// given
	dir := t.TempDir()

	// when
	_, err := Load[*testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "missing.yaml")),
		WithEnvFile(filepath.Join(dir, "missing.env")),
	)

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
