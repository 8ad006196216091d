package main

import (
	"net/http"

	"github.com/motech/mrs/internal/api"
	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/internal/infrastructure"
	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/module"
	"github.com/motech/mrs/web/app"
)

type Modules struct {
	API *module.Module
	App *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	appLogger := infra.Logger.With("module", "app")
	appModule, err := app.NewModule(cfg.App.BasePath, app.Deps{
		Patients:    patients.New(infra.Database.Connection(), appLogger, cfg.API.Pagination),
		Pagination:  cfg.API.Pagination,
		MaxFormSize: cfg.App.MaxFormSizeBytes(),
		Logger:      infra.Logger,
		Observer:    infra.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
		App: appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.App.BasePath, http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNativeHandler("GET /metrics", infra.Metrics.Handler())

	return router
}
