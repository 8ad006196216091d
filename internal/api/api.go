// Package api assembles the JSON API module: domain handlers, the OpenAPI
// document, and interactive docs.
package api

import (
	"net/http"

	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/internal/infrastructure"
	"github.com/motech/mrs/pkg/middleware"
	"github.com/motech/mrs/pkg/module"
	"github.com/motech/mrs/pkg/openapi"
)

// NewModule builds the API module from the shared infrastructure.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)
	return newModule(cfg, runtime, domain)
}

func newModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.AddServer(cfg.Domain)
	cfg.API.OpenAPI.Apply(spec)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, cfg.API.BasePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
