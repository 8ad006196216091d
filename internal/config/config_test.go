package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/motech/mrs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseTOML = `
shutdown_timeout = "20s"
version = "1.2.0"

[server]
port = 8080

[database]
name = "mrs"
user = "mrs"

[logging]
level = "info"
format = "json"

[api.pagination]
default_page_size = 25

[app]
max_form_size = "128KB"
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseTOML)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 25, cfg.API.Pagination.DefaultPageSize)
	assert.Equal(t, "/app", cfg.App.BasePath)
	assert.Equal(t, int64(128000), cfg.App.MaxFormSizeBytes())
	assert.Equal(t, "json", string(cfg.Logging.Format))
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseTOML)
	writeFile(t, dir, "config.test.toml", `
[server]
port = 9090

[database]
host = "db"
`)
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "mrs", cfg.Database.Name)
	assert.Equal(t, "test", cfg.Env())
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseTOML)
	t.Setenv("DATABASE_HOST", "env-db")
	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv(config.EnvAppMaxFormSize, "1MB")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, int64(1000000), cfg.App.MaxFormSizeBytes())
}

func TestLoad_APIEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseTOML)
	t.Setenv(config.EnvAPIBasePath, "/rest")
	t.Setenv("API_OPENAPI_SERVERS", "https://mrs.example.org")
	t.Setenv("API_OPENAPI_TITLE", "Facility API")
	t.Setenv("LOGGING_LEVEL", "DEBUG")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/rest", cfg.API.BasePath)
	assert.Equal(t, "Facility API", cfg.API.OpenAPI.Title)
	assert.Equal(t, []string{"https://mrs.example.org"}, cfg.API.OpenAPI.Servers)
	assert.Equal(t, "debug", string(cfg.Logging.Level))

	t.Setenv(config.EnvAPIBasePath, "rest")
	_, err = config.Load(dir)
	assert.ErrorContains(t, err, "api")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed toml", "[server\nport = 1"},
		{"missing database name", "[database]\nuser = \"mrs\""},
		{"bad form size", "[database]\nname = \"mrs\"\nuser = \"mrs\"\n[app]\nmax_form_size = \"huge\""},
		{"clashing base paths", "[database]\nname = \"mrs\"\nuser = \"mrs\"\n[api]\nbase_path = \"/app\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, config.BaseConfigFile, tt.body)

			_, err := config.Load(dir)
			assert.Error(t, err)
		})
	}

	_, err := config.Load(t.TempDir())
	assert.Error(t, err)
}

func TestAppConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AppConfig
		wantErr bool
	}{
		{"defaults", config.AppConfig{}, false},
		{"invalid size", config.AppConfig{MaxFormSize: "lots"}, true},
		{"nested base path", config.AppConfig{BasePath: "/app/v2"}, true},
		{"relative base path", config.AppConfig{BasePath: "app"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(64000), tt.cfg.MaxFormSizeBytes())
		})
	}
}

func TestServerConfig_Merge(t *testing.T) {
	base := &config.ServerConfig{Host: "localhost", Port: 8080, ReadTimeout: "30s"}
	base.Merge(&config.ServerConfig{Port: 9090, WriteTimeout: "60s"})

	assert.Equal(t, "localhost", base.Host)
	assert.Equal(t, 9090, base.Port)
	assert.Equal(t, "30s", base.ReadTimeout)
	assert.Equal(t, "60s", base.WriteTimeout)
}

func TestServerConfig_Finalize_InvalidPort(t *testing.T) {
	cfg := &config.ServerConfig{Port: 70000}
	assert.Error(t, cfg.Finalize())
}
