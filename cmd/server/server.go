package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/internal/infrastructure"
	"github.com/motech/mrs/internal/server"
	"github.com/motech/mrs/pkg/middleware"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("build modules: %w", err)
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    server.New(&cfg.Server, buildHandler(infra, router), infra.Logger),
	}, nil
}

func buildHandler(infra *infrastructure.Infrastructure, router http.Handler) http.Handler {
	mw := middleware.New()
	mw.Use(middleware.RequestID())
	mw.Use(middleware.Recoverer())
	mw.Use(infra.Metrics.Middleware())
	mw.Use(middleware.TrimSlash())
	return mw.Apply(router)
}

// Start begins all subsystems and returns once they are started.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
