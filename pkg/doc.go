// Package pkg provides the core libraries for Conceptmap diagram planning.
//
// # Overview
//
// Conceptmap turns the free-form answer of a language model into a
// render-ready concept diagram. The model is asked to embed a small JSON graph
// (title, nodes, edges) in its answer. Conceptmap finds that object, repairs
// it when the answer was cut off, validates it, picks a template and computes
// deterministic geometry that any renderer can draw.
//
// # Architecture
//
// The data flow through Conceptmap:
//
//	Model answer (markdown, prose, fenced JSON)
//	         ↓
//	    [extract] package (locate, repair and decode the JSON object)
//	         ↓
//	    [graph] package (validate nodes and edges)
//	         ↓
//	    [classify] package (comparison, quadrant or hierarchy)
//	         ↓
//	    [layout] package (levels, positions, sectors, connectors)
//	         ↓
//	    [plan] RenderPlan (JSON)  →  [render] SVG / DOT
//
// # Quick Start
//
//	res, err := pipeline.Build(answer, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(errors.UserMessage(err))
//	}
//	os.Stdout.Write(svg.Render(res.Plan))
//
// # Main Packages
//
// [pipeline] - Build runs extract → validate → classify → layout. The Runner
// adds caching, hooks and change notifications, and renders artifacts.
//
// [cache] - Plan and artifact caching with memory (LRU), file, Redis and
// MongoDB backends behind one interface.
//
// [errors] - Coded errors shared by every layer, plus non-fatal diagnostics.
//
// [notify] - In-process fan-out of plan events, used by the server's
// event stream.
//
// [observability] - Hooks around pipeline stages and counters exposed by the
// stats endpoint.
//
// [render/svg] draws a plan exactly as positioned. [render/nodelink] exports
// DOT and shells out to Graphviz.
//
// [extract]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/extract
// [graph]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/graph
// [classify]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/classify
// [layout]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/layout
// [plan]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/plan
// [render]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/errors
// [notify]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/notify
// [observability]: https://pkg.go.dev/github.com/paupedrejon/conceptmap/pkg/observability
package pkg
