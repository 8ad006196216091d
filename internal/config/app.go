package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

const (
	EnvAppBasePath    = "APP_BASE_PATH"
	EnvAppMaxFormSize = "APP_MAX_FORM_SIZE"
)

// AppConfig configures the server-rendered MRS web module.
type AppConfig struct {
	BasePath       string `toml:"base_path"`
	MaxFormSize    string `toml:"max_form_size"`
	maxFormSizeVal int64
}

// MaxFormSizeBytes is the parsed max_form_size, available after Finalize.
func (c *AppConfig) MaxFormSizeBytes() int64 {
	return c.maxFormSizeVal
}

func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxFormSize != "" {
		c.MaxFormSize = overlay.MaxFormSize
	}
}

func (c *AppConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if c.MaxFormSize == "" {
		c.MaxFormSize = "64KB"
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAppMaxFormSize); v != "" {
		c.MaxFormSize = v
	}
}

func (c *AppConfig) validate() error {
	if err := validateBasePath(c.BasePath); err != nil {
		return err
	}

	size, err := units.FromHumanSize(c.MaxFormSize)
	if err != nil {
		return fmt.Errorf("invalid max_form_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_form_size must be positive")
	}
	c.maxFormSizeVal = size

	return nil
}

func validateBasePath(p string) error {
	if !strings.HasPrefix(p, "/") || strings.Count(p, "/") != 1 || len(p) < 2 {
		return fmt.Errorf("base_path must be a single segment like /app: %q", p)
	}
	return nil
}
