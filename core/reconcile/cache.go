package reconcile

import (
	"context"
	"sync"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"

	"golang.org/x/sync/singleflight"
)

// cachedSource holds one parsed input.
type cachedSource struct {
	header datfile.Header
	items  []*datitems.Item
	built  time.Time
}

// SourceCache keeps parsed inputs for a TTL so repeated runs over the same
// sources skip parsing. Concurrent misses for one input share a single load.
type SourceCache struct {
	loader Loader
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]*cachedSource
	sf      singleflight.Group
}

// NewSourceCache wraps loader. A zero ttl disables caching.
func NewSourceCache(loader Loader, ttl time.Duration) *SourceCache {
	return &SourceCache{
		loader:  loader,
		ttl:     ttl,
		entries: make(map[string]*cachedSource),
	}
}

func (c *SourceCache) expired(e *cachedSource) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// Load implements Loader. Every call receives fresh clones, so callers may
// mutate the items they get.
func (c *SourceCache) Load(ctx context.Context, in Input) (*datfile.Stream, error) {
	if c.ttl == 0 {
		return c.loader.Load(ctx, in)
	}

	c.mu.RLock()
	entry, ok := c.entries[in.Path]
	c.mu.RUnlock()

	if !ok || c.expired(entry) {
		result, err, _ := c.sf.Do(in.Path, func() (interface{}, error) {
			c.mu.RLock()
			entry, ok := c.entries[in.Path]
			c.mu.RUnlock()
			if ok && !c.expired(entry) {
				return entry, nil
			}

			stream, err := c.loader.Load(ctx, in)
			if err != nil {
				return nil, err
			}
			items, err := datfile.Collect(ctx, stream, nil)
			if err != nil {
				return nil, err
			}
			fresh := &cachedSource{header: stream.Header, items: items, built: time.Now()}

			c.mu.Lock()
			c.entries[in.Path] = fresh
			c.mu.Unlock()
			return fresh, nil
		})
		if err != nil {
			return nil, err
		}
		entry = result.(*cachedSource)
	}

	clones := make([]*datitems.Item, len(entry.items))
	for i, it := range entry.items {
		clones[i] = it.Clone()
	}
	return datfile.FromItems(entry.header, clones), nil
}

// Invalidate drops the cached copy of path.
func (c *SourceCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len returns the number of cached inputs.
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
