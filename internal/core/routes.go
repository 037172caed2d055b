package core

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// defaultRequestTimeout is the soft deadline applied to request contexts.
// It leaves headroom above the upstream archive timeout plus retries.
const defaultRequestTimeout = 45 * time.Second

// defaultRedactedHeaders lists header names whose values are masked in
// request logs.
var defaultRedactedHeaders = []string{
	"Authorization",
	"Cookie",
}

// MountRoutes registers the global middleware chain, the health endpoint,
// and all domain routes contributed through RouteRegistrars.
//
// Middleware ordering:
//  1. Recoverer       - outermost, catches all panics.
//  2. ContextTimeout  - soft deadline for slow upstream calls.
//  3. RequestID       - correlation ID for logs and upstream propagation.
//  4. SecurityHeaders - present on every response.
//  5. RequestLogger   - structured logging with redacted headers.
func (s *Server) MountRoutes() {
	s.router.Use(s.Recoverer)
	s.router.Use(ContextTimeoutMiddleware(defaultRequestTimeout))
	s.router.Use(RequestIDMiddleware)
	s.router.Use(s.SecurityHeadersMiddleware)
	s.router.Use(RequestLogger(s.Logger, defaultRedactedHeaders))

	s.router.Get("/health", s.HandleHealth)

	s.router.Group(func(r chi.Router) {
		for _, registrar := range s.RouteRegistrars {
			registrar(r)
		}
	})
}
