package pipeline

import (
	"fmt"
	"time"

	"github.com/paupedrejon/conceptmap/pkg/classify"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/extract"
	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/layout"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// solve is swapped in tests to exercise panic recovery.
var solve = Solve

// Build runs extract, validate, classify and solve on text.
//
// Errors are typed: MALFORMED_JSON when no JSON object can be recovered,
// EMPTY_SPEC when it holds no usable node, INVALID_CONFIG for bad options and
// INTERNAL_ERROR if a stage panics. Everything else is recovered and reported
// in Result.Diagnostics.
func Build(text string, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.New(errors.ErrCodeInternal, "plan diagram: %v", r)
		}
	}()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	ex, err := extract.Extract(text)
	if err != nil {
		return nil, err
	}
	v, err := graph.Validate(ex.Raw)
	if err != nil {
		return nil, err
	}
	cls := classify.Classify(v)
	p := solve(v, cls, opts.Layout)

	data, err := plan.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal plan")
	}

	diags := make([]errors.Diagnostic, 0, len(v.Diagnostics)+len(cls.Diagnostics))
	diags = append(diags, v.Diagnostics...)
	diags = append(diags, cls.Diagnostics...)

	return &Result{
		Plan:           p,
		PlanJSON:       data,
		Diagnostics:    diags,
		Repaired:       ex.Repaired,
		Graph:          v,
		Classification: cls,
		Stats: Stats{
			NodeCount:      len(p.Nodes),
			ConnectorCount: len(p.Connectors),
			Duration:       time.Since(start),
		},
	}, nil
}

// Solve computes the geometry of v for the classified template.
func Solve(v *graph.Validated, cls classify.Result, cfg layout.Config) *plan.RenderPlan {
	p := &plan.RenderPlan{
		Template:   cls.Template,
		Title:      v.Title,
		Connectors: []plan.Connector{},
	}

	switch cls.Template {
	case plan.TemplateComparison, plan.TemplateQuadrant:
		sl := layout.SolveSectors(v, cls.Template, cls.Entities, cfg)
		p.Nodes = sl.Nodes
		p.Circle = &sl.Circle
		p.Sectors = sl.Sectors
		p.Center = sl.Center
		p.CanvasWidth, p.CanvasHeight = sl.Canvas.Width, sl.Canvas.Height
	case plan.TemplateHierarchy:
		nodes, canvas := layout.SolveHierarchy(v, layout.AssignLevels(v), cfg)
		p.Nodes = nodes
		p.Connectors = layout.Route(nodes, v.Edges, cfg)
		p.CanvasWidth, p.CanvasHeight = canvas.Width, canvas.Height
	default:
		panic(fmt.Sprintf("unknown template %q", cls.Template))
	}
	return p
}
