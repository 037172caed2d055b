// Package core provides the API chassis for the RainCast service. It owns the
// chi router, the cross-cutting middleware chain (panic recovery, request
// correlation, structured request logging), the response envelope helpers,
// and the health endpoint. Domain handlers mount their routes through
// RouteRegistrars, keeping core free of domain imports.
package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raincast/internal/config"
)

// Server encapsulates the HTTP chassis dependencies, allowing injection
// during testing and distinct configuration per environment.
type Server struct {
	Config *config.Config
	Logger *slog.Logger

	// HealthProbes are executed concurrently by the /health endpoint.
	HealthProbes []HealthProbe

	// RouteRegistrars are populated by the application entry point and mount
	// domain handler routes. The indirection avoids import cycles between
	// core and handler packages.
	RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer prepares the server for route mounting. It fails fast on missing
// critical dependencies. The caller mounts routes via MountRoutes after
// construction; the separation lets tests customize route registration.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		router: chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}
