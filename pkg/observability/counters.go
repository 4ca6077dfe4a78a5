package observability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Counters is an in-memory implementation of both hook families. It backs
// the API's /v1/stats endpoint and is handy in tests.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
	layout time.Duration
}

// NewCounters returns empty counters.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Hooks returns a bundle routing both families to c.
func (c *Counters) Hooks() Hooks {
	return Hooks{Pipeline: c, Cache: c}
}

func (c *Counters) inc(key string, n int64) {
	c.mu.Lock()
	c.counts[key] += n
	c.mu.Unlock()
}

func (c *Counters) OnExtract(_ context.Context, repaired bool, err error) {
	switch {
	case err != nil:
		c.inc("extract.failed", 1)
	case repaired:
		c.inc("extract.repaired", 1)
	default:
		c.inc("extract.ok", 1)
	}
}

func (c *Counters) OnClassify(_ context.Context, template, _ string) {
	c.inc("template."+template, 1)
}

func (c *Counters) OnLayout(_ context.Context, _ string, nodes int, d time.Duration) {
	c.mu.Lock()
	c.counts["layout.runs"]++
	c.counts["layout.nodes"] += int64(nodes)
	c.layout += d
	c.mu.Unlock()
}

func (c *Counters) OnDiagnostic(_ context.Context, code string) {
	c.inc("diagnostic."+code, 1)
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string) {
	c.inc("cache.hit."+keyType, 1)
}

func (c *Counters) OnCacheMiss(_ context.Context, keyType string) {
	c.inc("cache.miss."+keyType, 1)
}

func (c *Counters) OnCacheSet(_ context.Context, keyType string, size int) {
	c.mu.Lock()
	c.counts["cache.set."+keyType]++
	c.counts["cache.bytes."+keyType] += int64(size)
	c.mu.Unlock()
}

// Get returns a single counter.
func (c *Counters) Get(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

// Snapshot copies every counter.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Keys lists counter names in sorted order.
func (c *Counters) Keys() []string {
	snap := c.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LayoutTime is the cumulative solve time reported through OnLayout.
func (c *Counters) LayoutTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
)
