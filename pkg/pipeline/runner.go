package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/notify"
	"github.com/paupedrejon/conceptmap/pkg/observability"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cache key types reported to hooks.
const (
	keyTypePlan     = "plan"
	keyTypeArtifact = "artifact"
)

// Runner wraps Build with caching, logging, hooks and event publishing.
//
// A Runner holds no per-run state, so one instance can serve concurrent
// requests with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Hooks     observability.Hooks
	Publisher notify.Publisher

	// TTL applies to stored plans; zero uses cache.TTLPlan.
	TTL time.Duration
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithHooks routes pipeline and cache events to h.
func WithHooks(h observability.Hooks) RunnerOption {
	return func(r *Runner) { r.Hooks = h }
}

// WithPublisher announces every plan on p.
func WithPublisher(p notify.Publisher) RunnerOption {
	return func(r *Runner) { r.Publisher = p }
}

// WithTTL overrides the expiry of stored plans.
func WithTTL(d time.Duration) RunnerOption {
	return func(r *Runner) { r.TTL = d }
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...RunnerOption) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	r.Hooks = r.Hooks.WithDefaults()
	if r.Publisher == nil {
		r.Publisher = notify.Nop{}
	}
	if r.TTL <= 0 {
		r.TTL = cache.TTLPlan
	}
	return r
}

// cachedPlan is the stored form of a Result. Plan keeps the exact bytes of
// plan.Marshal so a hit is bit-identical to a recompute.
type cachedPlan struct {
	Plan        []byte              `json:"plan"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`
	Repaired    bool                `json:"repaired,omitempty"`
}

// PlanKey returns the cache key for text under opts.
func (r *Runner) PlanKey(text string, opts Options) (string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", err
	}
	return r.Keyer.PlanKey(cache.HashString(text), opts.Layout), nil
}

// Plan builds the plan for text, serving it from the cache when possible.
func (r *Runner) Plan(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key := r.Keyer.PlanKey(cache.HashString(text), opts.Layout)
	start := time.Now()

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.Stats.Duration = time.Since(start)
			r.report(res)
			return res, nil
		}
	}

	res, err := Build(text, opts)
	if err != nil {
		if errors.Is(err, errors.ErrCodeMalformedJSON) {
			r.Hooks.Pipeline.OnExtract(ctx, false, err)
		}
		r.Logger.Warn("plan failed", "code", errors.GetCode(err), "error", errors.UserMessage(err))
		return nil, err
	}
	res.Key = key

	r.Hooks.Pipeline.OnExtract(ctx, res.Repaired, nil)
	r.Hooks.Pipeline.OnClassify(ctx, string(res.Classification.Template), res.Classification.Reason)
	r.Hooks.Pipeline.OnLayout(ctx, string(res.Plan.Template), res.Stats.NodeCount, res.Stats.Duration)
	r.logDiagnostics(ctx, res)
	r.store(ctx, key, res)

	r.report(res)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		r.Hooks.Cache.OnCacheMiss(ctx, keyTypePlan)
		return nil, false
	}

	var entry cachedPlan
	if err := json.Unmarshal(data, &entry); err != nil {
		r.Hooks.Cache.OnCacheMiss(ctx, keyTypePlan)
		return nil, false
	}
	p, err := plan.Unmarshal(entry.Plan)
	if err != nil {
		r.Hooks.Cache.OnCacheMiss(ctx, keyTypePlan)
		return nil, false
	}

	r.Hooks.Cache.OnCacheHit(ctx, keyTypePlan)
	return &Result{
		Plan:        p,
		PlanJSON:    entry.Plan,
		Diagnostics: entry.Diagnostics,
		Repaired:    entry.Repaired,
		Key:         key,
		Cached:      true,
		Stats: Stats{
			NodeCount:      len(p.Nodes),
			ConnectorCount: len(p.Connectors),
		},
	}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedPlan{
		Plan:        res.PlanJSON,
		Diagnostics: res.Diagnostics,
		Repaired:    res.Repaired,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	r.Hooks.Cache.OnCacheSet(ctx, keyTypePlan, len(data))
}

func (r *Runner) logDiagnostics(ctx context.Context, res *Result) {
	for _, e := range res.Graph.Dropped {
		r.Logger.Warn("dropped dangling edge", "from", e.From, "to", e.To)
	}
	for _, d := range res.Diagnostics {
		r.Hooks.Pipeline.OnDiagnostic(ctx, string(d.Code))
		if d.Code != errors.ErrCodeDanglingEdge {
			r.Logger.Warn("diagnostic", "code", d.Code, "message", d.Message)
		}
	}
}

func (r *Runner) report(res *Result) {
	r.Logger.Info("planned diagram",
		"template", res.Plan.Template,
		"nodes", res.Stats.NodeCount,
		"connectors", res.Stats.ConnectorCount,
		"cached", res.Cached,
		"duration", res.Stats.Duration)
	r.Publisher.Publish(notify.NewEvent(res.Key, string(res.Plan.Template), res.Stats.NodeCount, res.Cached))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
