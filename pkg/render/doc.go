// Package render holds reference sinks for RenderPlans.
//
//   - [svg]: native SVG drawing of every template
//   - [nodelink]: Graphviz DOT export and Graphviz-rendered SVG
//
// [svg]: github.com/paupedrejon/conceptmap/pkg/render/svg
// [nodelink]: github.com/paupedrejon/conceptmap/pkg/render/nodelink
package render
