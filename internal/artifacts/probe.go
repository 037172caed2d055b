package artifacts

import (
	"context"
	"fmt"

	"raincast/internal/types"
)

// HealthProbe reports whether both tasks' artifacts can be served from the
// cache. A probe check on a cold cache also warms it.
type HealthProbe struct {
	cache *Cache
}

// NewHealthProbe creates a probe backed by the given cache.
func NewHealthProbe(cache *Cache) *HealthProbe {
	return &HealthProbe{cache: cache}
}

// Name identifies the probe in health check responses.
func (p *HealthProbe) Name() string {
	return "model_artifacts"
}

// Check loads each task's artifact through the cache.
func (p *HealthProbe) Check(ctx context.Context) error {
	for _, task := range []types.Task{types.TaskRain, types.TaskPrecipitation} {
		if _, err := p.cache.Get(ctx, task); err != nil {
			return fmt.Errorf("artifact for task %s: %w", task, err)
		}
	}
	return nil
}
