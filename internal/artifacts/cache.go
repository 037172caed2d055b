package artifacts

import (
	"context"
	"log/slog"
	"sync"

	"raincast/internal/types"
)

// Loader loads a task's artifact bundle from storage. Injected into the cache
// for testability; the default is Load against the configured models directory.
type Loader func(task types.Task) (*Artifact, error)

// Cache is the process-wide lazily-initialized holder of artifact bundles,
// one per task. It guarantees at-most-one load per task even under concurrent
// first access, and a failed load leaves the slot empty so a later call can
// retry after the operator fixes the artifact files.
type Cache struct {
	loader Loader
	logger *slog.Logger

	mu      sync.Mutex
	entries map[types.Task]*cacheEntry
}

// cacheEntry serializes loading for a single task. The entry mutex is held
// for the duration of a load so concurrent first callers for the same task
// block instead of double-loading, while loads for different tasks proceed
// independently.
type cacheEntry struct {
	mu       sync.Mutex
	artifact *Artifact
}

// NewCache creates a Cache that loads artifacts from baseDir via Load.
func NewCache(baseDir string, logger *slog.Logger) *Cache {
	return NewCacheWithLoader(func(task types.Task) (*Artifact, error) {
		return Load(baseDir, task)
	}, logger)
}

// NewCacheWithLoader creates a Cache with a custom loader. Used by tests and
// by callers that source artifacts from somewhere other than the local disk.
func NewCacheWithLoader(loader Loader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader:  loader,
		logger:  logger,
		entries: make(map[types.Task]*cacheEntry),
	}
}

// Get returns the task's artifact bundle, loading it on first use.
// The returned Artifact is immutable and safe for concurrent reads.
func (c *Cache) Get(ctx context.Context, task types.Task) (*Artifact, error) {
	c.mu.Lock()
	entry, ok := c.entries[task]
	if !ok {
		entry = &cacheEntry{}
		c.entries[task] = entry
	}
	c.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.artifact != nil {
		return entry.artifact, nil
	}

	artifact, err := c.loader(task)
	if err != nil {
		// Slot stays empty: a later call retries the load.
		c.logger.ErrorContext(ctx, "model artifact load failed",
			"task", string(task),
			"error", err,
		)
		return nil, err
	}

	c.logger.InfoContext(ctx, "model artifact loaded",
		"task", string(task),
		"has_threshold", artifact.HasThreshold,
	)

	entry.artifact = artifact
	return artifact, nil
}
