// Package app provides the MRS web module with embedded templates and assets.
package app

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/motech/mrs/internal/mrs"
	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/middleware"
	"github.com/motech/mrs/pkg/module"
	"github.com/motech/mrs/pkg/navigation"
	"github.com/motech/mrs/pkg/pagination"
	"github.com/motech/mrs/pkg/web"
)

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const (
	layout = "app.html"

	// swapTarget is the layout element views render into.
	swapTarget = "#view"
)

var publicFiles = []string{
	"app.css",
	"robots.txt",
}

var errorViews = []string{"404.html", "500.html"}

// Deps are the collaborators the MRS controllers need.
type Deps struct {
	Patients    patients.System
	Pagination  pagination.Config
	MaxFormSize int64
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
	// Observer is notified of navigation outcomes. Optional.
	Observer web.Observer
}

// NewModule creates the app module configured for the given base path.
func NewModule(basePath string, deps Deps) (*module.Module, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	logger := deps.Logger.With("module", "app")

	p := navigation.NewProvider[web.Controller]()
	mrs.Configure(p,
		mrs.NewDashboardController(deps.Patients, deps.Pagination, logger),
		mrs.NewManageController(deps.Patients, deps.MaxFormSize, logger),
	)
	table, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("build navigation: %w", err)
	}

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		templateNames(table),
		funcs(basePath, table),
	)
	if err != nil {
		return nil, err
	}

	host, err := web.NewViewHost(table, ts, layout, logger)
	if err != nil {
		return nil, err
	}
	if deps.Observer != nil {
		host.SetObserver(deps.Observer)
	}
	host.SetErrorHandler(errorHandler(ts, logger))
	host.SetSwapTarget(swapTarget)

	m := module.New(basePath, buildRouter(host))
	m.Use(middleware.Logger(logger))
	return m, nil
}

func buildRouter(host *web.ViewHost) http.Handler {
	r := web.NewRouter()
	r.SetFallback(host)

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}

func templateNames(table *navigation.Table[web.Controller]) []string {
	names := append([]string(nil), errorViews...)
	for _, e := range table.Entries() {
		names = append(names, e.Route.Template)
	}
	return names
}

func funcs(basePath string, table *navigation.Table[web.Controller]) template.FuncMap {
	return template.FuncMap{
		"url": func(path string) string {
			return basePath + path
		},
		"editURL": func(motechID string) (string, error) {
			path, err := table.URL(mrs.EditPattern, map[string]string{"id": motechID})
			if err != nil {
				return "", err
			}
			return basePath + path, nil
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(patients.DateLayout)
		},
		"age": func(p patients.Patient, at time.Time) int {
			return p.Age(at)
		},
	}
}

func errorHandler(ts *web.TemplateSet, logger *slog.Logger) web.ErrorHandler {
	notFound := ts.ErrorHandler(layout, "404.html", http.StatusNotFound, "Not Found")
	failed := ts.ErrorHandler(layout, "500.html", http.StatusInternalServerError, "Error")

	return func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, web.ErrNotFound) {
			logger.Debug("view subject not found", "path", r.URL.Path, "error", err)
			notFound(w, r)
			return
		}
		logger.Error("view failed", "path", r.URL.Path, "error", err)
		failed(w, r)
	}
}
