package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	h := Noop()
	h.Pipeline.OnExtract(ctx, true, nil)
	h.Pipeline.OnClassify(ctx, "hierarchy", "children")
	h.Pipeline.OnLayout(ctx, "hierarchy", 3, time.Millisecond)
	h.Pipeline.OnDiagnostic(ctx, "DANGLING_EDGE")
	h.Cache.OnCacheHit(ctx, "plan")
	h.Cache.OnCacheMiss(ctx, "plan")
	h.Cache.OnCacheSet(ctx, "plan", 128)
}

func TestWithDefaults(t *testing.T) {
	h := Hooks{}.WithDefaults()
	if _, ok := h.Pipeline.(NoopPipelineHooks); !ok {
		t.Error("nil Pipeline should become NoopPipelineHooks")
	}
	if _, ok := h.Cache.(NoopCacheHooks); !ok {
		t.Error("nil Cache should become NoopCacheHooks")
	}

	c := NewCounters()
	h = Hooks{Cache: c}.WithDefaults()
	if h.Cache != CacheHooks(c) {
		t.Error("WithDefaults should keep explicit members")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	h := c.Hooks()

	h.Pipeline.OnExtract(ctx, false, nil)
	h.Pipeline.OnExtract(ctx, true, nil)
	h.Pipeline.OnExtract(ctx, false, errors.New("bad"))
	h.Pipeline.OnClassify(ctx, "quadrant", "children")
	h.Pipeline.OnLayout(ctx, "quadrant", 4, 2*time.Millisecond)
	h.Pipeline.OnLayout(ctx, "quadrant", 4, 3*time.Millisecond)
	h.Pipeline.OnDiagnostic(ctx, "DANGLING_EDGE")
	h.Cache.OnCacheMiss(ctx, "plan")
	h.Cache.OnCacheSet(ctx, "plan", 100)
	h.Cache.OnCacheHit(ctx, "plan")

	want := map[string]int64{
		"extract.ok":               1,
		"extract.repaired":         1,
		"extract.failed":           1,
		"template.quadrant":        1,
		"layout.runs":              2,
		"layout.nodes":             8,
		"diagnostic.DANGLING_EDGE": 1,
		"cache.miss.plan":          1,
		"cache.set.plan":           1,
		"cache.bytes.plan":         100,
		"cache.hit.plan":           1,
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
	if c.LayoutTime() != 5*time.Millisecond {
		t.Errorf("LayoutTime = %v", c.LayoutTime())
	}
	if keys := c.Keys(); len(keys) != len(want) || keys[0] != "cache.bytes.plan" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestCountersConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnCacheHit(ctx, "plan")
		}()
	}
	wg.Wait()
	if got := c.Get("cache.hit.plan"); got != 50 {
		t.Errorf("cache.hit.plan = %d, want 50", got)
	}
}
