// Package nodelink exports plans as Graphviz node-link diagrams.
//
// [ToDOT] turns a RenderPlan into DOT source, keeping the plan's levels as
// ranks so Graphviz draws the same tiers the hierarchy solver computed.
// Sector plans export their entity nodes, filled with their sector colour.
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT output can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
