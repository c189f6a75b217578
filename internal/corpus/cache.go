package corpus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Cache memoizes the normalized corpus. The first Snapshot call after startup
// or invalidation triggers one load; concurrent callers block on the same load
// and share its result. Returned snapshots are immutable, so in-flight queries
// keep a consistent view even while a reload replaces the cached one.
type Cache struct {
	loader *Loader
	logger *zap.Logger

	mu   sync.Mutex
	snap *Snapshot
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets a logger for load and invalidation events.
func WithLogger(l *zap.Logger) CacheOption {
	return func(c *Cache) { c.logger = l }
}

// NewCache creates a corpus cache backed by the given loader.
func NewCache(loader *Loader, opts ...CacheOption) *Cache {
	c := &Cache{loader: loader, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the cached snapshot, loading it first when cold. Only one
// load runs at a time; a failed load leaves the cache cold so the next caller
// retries.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		return c.snap, nil
	}
	snap, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = snap
	return snap, nil
}

// Invalidate drops the cached snapshot. The next Snapshot call reloads.
// Queries already holding the old snapshot are unaffected.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		c.logger.Info("corpus cache invalidated", zap.String("version", c.snap.Version))
	}
	c.snap = nil
}

// Refresh invalidates and immediately reloads, returning the new snapshot.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	c.Invalidate()
	return c.Snapshot(ctx)
}

// Current returns the cached snapshot without loading, or nil when cold.
func (c *Cache) Current() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}
