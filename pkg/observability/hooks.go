// Package observability provides hooks for metrics and tracing.
//
// Hooks are plain interfaces with no-op defaults. There is no package-level
// registry: the program builds a [Hooks] value and hands it to the
// constructors that emit events (pipeline.NewRunner, server.New), so two
// runners in one process can report to different backends.
//
//	hooks := observability.Hooks{Cache: myCacheMetrics{}}
//	runner := pipeline.NewRunner(c, nil, logger, pipeline.WithHooks(hooks))
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the planning pipeline.
type PipelineHooks interface {
	// OnExtract fires after the JSON candidate was decoded (or failed to).
	OnExtract(ctx context.Context, repaired bool, err error)

	// OnClassify fires once the template is chosen.
	OnClassify(ctx context.Context, template, reason string)

	// OnLayout fires after geometry was solved.
	OnLayout(ctx context.Context, template string, nodes int, duration time.Duration)

	// OnDiagnostic fires for each non-fatal finding (dropped edge, ...).
	OnDiagnostic(ctx context.Context, code string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExtract(context.Context, bool, error)               {}
func (NoopPipelineHooks) OnClassify(context.Context, string, string)           {}
func (NoopPipelineHooks) OnLayout(context.Context, string, int, time.Duration) {}
func (NoopPipelineHooks) OnDiagnostic(context.Context, string)                 {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Hooks Bundle
// =============================================================================

// Hooks bundles every hook family. Nil members act as no-ops.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
}

// Noop returns hooks that ignore every event.
func Noop() Hooks {
	return Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}}
}

// WithDefaults replaces nil members with no-op implementations.
func (h Hooks) WithDefaults() Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	return h
}
