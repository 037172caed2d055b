package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// healthCheckTimeout is the maximum time allowed for all health probes to
// complete. If any probe exceeds this deadline, the health check returns 503.
const healthCheckTimeout = 2 * time.Second

// HealthProbe defines the interface for a subsystem health check. Each probe
// represents a dependency (model artifacts, upstream weather source) that
// must be operational for the service to function.
type HealthProbe interface {
	// Name returns a human-readable identifier for the probe.
	Name() string

	// Check performs the health check against the subsystem. It should
	// respect the context deadline and return an error if the subsystem is
	// unhealthy or unreachable.
	Check(ctx context.Context) error
}

// componentStatus represents the health state of a single subsystem.
type componentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthResponse is the JSON response body for the health check endpoint.
type healthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components,omitempty"`
}

// HandleHealth executes all registered health probes concurrently with a
// short timeout. Returns 200 if all probes report healthy, 503 if any
// subsystem fails or the deadline is exceeded.
//
// This endpoint is public and mounted at GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	probes := s.HealthProbes
	if len(probes) == 0 {
		JSON(w, r, http.StatusOK, healthResponse{Status: "healthy"})
		return
	}

	type probeResult struct {
		name string
		err  error
	}

	var (
		mu      sync.Mutex
		results = make([]probeResult, 0, len(probes))
		wg      sync.WaitGroup
	)

	for _, probe := range probes {
		wg.Add(1)
		go func(p HealthProbe) {
			defer wg.Done()

			var err error
			func() {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("probe panicked: %v", r)
					}
				}()
				err = p.Check(ctx)
			}()

			mu.Lock()
			results = append(results, probeResult{name: p.Name(), err: err})
			mu.Unlock()
		}(probe)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Deadline expired; probes that have not reported are marked as
		// timed out below.
	}

	mu.Lock()
	completed := make(map[string]probeResult, len(results))
	for _, res := range results {
		completed[res.name] = res
	}
	mu.Unlock()

	components := make(map[string]componentStatus, len(probes))
	allHealthy := true

	for _, probe := range probes {
		name := probe.Name()
		result, ok := completed[name]
		switch {
		case !ok:
			allHealthy = false
			components[name] = componentStatus{
				Status:  "unhealthy",
				Message: "health check timed out",
			}
		case result.err != nil:
			allHealthy = false
			components[name] = componentStatus{
				Status:  "unhealthy",
				Message: result.err.Error(),
			}
		default:
			components[name] = componentStatus{Status: "healthy"}
		}
	}

	resp := healthResponse{Components: components}
	if allHealthy {
		resp.Status = "healthy"
		JSON(w, r, http.StatusOK, resp)
		return
	}
	resp.Status = "unhealthy"
	JSON(w, r, http.StatusServiceUnavailable, resp)
}
