package config

import (
	"fmt"
	"os"

	"github.com/motech/mrs/pkg/middleware"
	"github.com/motech/mrs/pkg/openapi"
	"github.com/motech/mrs/pkg/pagination"
)

// apiPrefix is prepended to every API override variable.
const apiPrefix = "API_"

const EnvAPIBasePath = apiPrefix + "BASE_PATH"

// APIConfig configures the JSON API module mounted next to the web app.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

func (c *APIConfig) Finalize() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if err := validateBasePath(c.BasePath); err != nil {
		return err
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"cors", func() error { return c.CORS.Finalize(apiCORSEnv()) }},
		{"pagination", func() error { return c.Pagination.Finalize(apiPaginationEnv()) }},
		{"openapi", func() error { return c.OpenAPI.Finalize(apiOpenAPIEnv()) }},
	}
	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func apiCORSEnv() *middleware.CORSEnv {
	const p = apiPrefix + "CORS_"
	return &middleware.CORSEnv{
		Enabled:          p + "ENABLED",
		Origins:          p + "ORIGINS",
		AllowedMethods:   p + "ALLOWED_METHODS",
		AllowedHeaders:   p + "ALLOWED_HEADERS",
		AllowCredentials: p + "ALLOW_CREDENTIALS",
		MaxAge:           p + "MAX_AGE",
	}
}

func apiPaginationEnv() *pagination.ConfigEnv {
	const p = apiPrefix + "PAGINATION_"
	return &pagination.ConfigEnv{
		DefaultPageSize: p + "DEFAULT_PAGE_SIZE",
		MaxPageSize:     p + "MAX_PAGE_SIZE",
	}
}

func apiOpenAPIEnv() *openapi.ConfigEnv {
	const p = apiPrefix + "OPENAPI_"
	return &openapi.ConfigEnv{
		Title:       p + "TITLE",
		Description: p + "DESCRIPTION",
		Servers:     p + "SERVERS",
	}
}
