// Package pipeline turns model output text into a RenderPlan.
//
// # Architecture
//
// The pipeline runs these stages, each a pure function:
//
//  1. Extract: find the JSON block in the text, repairing it once if needed
//  2. Validate: normalize nodes and edges, dropping what cannot be used
//  3. Classify: choose the comparison, quadrant or hierarchy template
//  4. Solve: compute levels, positions and connectors
//
// [Build] chains them synchronously. [Runner] wraps Build with a cache,
// logging, observability hooks and event publishing, all supplied through
// its constructor.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger,
//	    pipeline.WithHooks(hooks),
//	    pipeline.WithPublisher(notifier))
//	res, err := runner.Plan(ctx, text, pipeline.Options{})
//	if errors.Is(err, errors.ErrCodeMalformedJSON) {
//	    // show the text as-is
//	}
//	_ = plan.Write(res.Plan, os.Stdout)
package pipeline

import (
	"time"

	"github.com/paupedrejon/conceptmap/pkg/classify"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/layout"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. The zero value uses the default
// geometry.
type Options struct {
	Layout layout.Config `json:"layout"`

	// Refresh skips the cache lookup and overwrites the stored plan.
	Refresh bool `json:"refresh,omitempty"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults applies layout defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Layout.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the output of a pipeline run.
type Result struct {
	// Plan is the positioned diagram.
	Plan *plan.RenderPlan

	// PlanJSON is the marshalled Plan. A cache hit returns the stored bytes.
	PlanJSON []byte

	// Diagnostics lists recovered problems (dropped edges, duplicate ids,
	// unresolved comparisons) in discovery order.
	Diagnostics []errors.Diagnostic

	// Repaired is true when the JSON block needed repair to parse.
	Repaired bool

	// Graph and Classification are set when the plan was computed, nil and
	// zero on a cache hit.
	Graph          *graph.Validated
	Classification classify.Result

	// Key is the cache key of the plan; set by Runner only.
	Key string

	// Cached is true when Plan came from the cache.
	Cached bool

	Stats Stats
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount      int
	ConnectorCount int
	Duration       time.Duration
}
