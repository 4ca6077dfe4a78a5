package pipeline

import (
	"context"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/plan"
	"github.com/paupedrejon/conceptmap/pkg/render/nodelink"
	"github.com/paupedrejon/conceptmap/pkg/render/svg"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// SVG engines.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Formats and Engines list the accepted values in display order.
var (
	Formats = []string{FormatJSON, FormatSVG, FormatDOT}
	Engines = []string{EngineNative, EngineGraphviz}
)

// RenderOptions selects an artifact.
type RenderOptions struct {
	Format     string
	Engine     string  // svg only
	LineHeight float64 // native svg; defaults to the layout default
	Detailed   bool    // dot and graphviz labels
}

// ValidateAndSetDefaults checks the format and engine.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", o.Format, Formats...); err != nil {
		return err
	}
	return errors.ValidateChoice(errors.ErrCodeInvalidFormat, "engine", o.Engine, Engines...)
}

// RenderArtifact draws p in the requested format.
func RenderArtifact(ctx context.Context, p *plan.RenderPlan, opts RenderOptions) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatJSON:
		data, err := plan.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal plan")
		}
		return append(data, '\n'), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})), nil
	}

	if opts.Engine == EngineGraphviz {
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
		}
		return data, nil
	}
	var svgOpts []svg.Option
	if opts.LineHeight > 0 {
		svgOpts = append(svgOpts, svg.WithLineHeight(opts.LineHeight))
	}
	return svg.Render(p, svgOpts...), nil
}

// Render returns the artifact for res, caching it by the hash of the plan
// JSON. The boolean reports a cache hit.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(cache.Hash(res.PlanJSON), cache.ArtifactKeyOpts{
		Format:     opts.Format,
		Engine:     opts.Engine,
		Detailed:   opts.Detailed,
		LineHeight: opts.LineHeight,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		r.Hooks.Cache.OnCacheHit(ctx, keyTypeArtifact)
		return data, true, nil
	}
	r.Hooks.Cache.OnCacheMiss(ctx, keyTypeArtifact)

	data, err := RenderArtifact(ctx, res.Plan, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		r.Hooks.Cache.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	r.Logger.Debug("rendered artifact", "format", opts.Format, "engine", opts.Engine, "bytes", len(data))
	return data, false, nil
}
