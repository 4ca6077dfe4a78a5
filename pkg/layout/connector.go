package layout

import (
	"math"

	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// ControlFactor scales the vertical distance into the bezier control offset.
const ControlFactor = 0.3

// Route builds one connector per edge whose endpoints are both placed, in
// edge order. Each runs from the bottom centre of the parent's drawn box to
// the top centre of the child's, with control points pulled vertically by
// ControlFactor*|dy|. When the endpoints share a y the offset falls back to
// ControlFactor*(VSpacing-NodeHeight) so the curve never collapses.
func Route(nodes []plan.LayoutNode, edges []graph.Edge, cfg Config) []plan.Connector {
	placed := make(map[string]int, len(nodes))
	for i, n := range nodes {
		placed[n.ID] = i
	}

	out := make([]plan.Connector, 0, len(edges))
	for _, e := range edges {
		fi, ok := placed[e.From]
		if !ok {
			continue
		}
		ti, ok := placed[e.To]
		if !ok {
			continue
		}
		start, end := nodes[fi].Bottom(), nodes[ti].Top()
		off := ControlFactor * math.Abs(end.Y-start.Y)
		if end.Y == start.Y {
			off = ControlFactor * (cfg.VSpacing - cfg.NodeHeight)
		}
		out = append(out, plan.Connector{
			From:  e.From,
			To:    e.To,
			Start: start,
			C1:    plan.Point{X: start.X, Y: start.Y + off},
			C2:    plan.Point{X: end.X, Y: end.Y - off},
			End:   end,
		})
	}
	return out
}
