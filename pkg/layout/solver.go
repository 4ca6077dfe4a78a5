package layout

import (
	"math"

	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// Canvas is the size of a solved drawing.
type Canvas struct {
	Width  float64
	Height float64
}

// SolveHierarchy places every node of v on its level row.
//
// Each level is centred on the widest one: slot i of a level with count
// nodes sits at x = Padding + (maxLevelWidth-levelWidth)/2 + i*HSpacing,
// where levelWidth = (count-1)*HSpacing, and y = Padding + level*VSpacing.
// The result is translated so the slot bounding box starts at (Padding,
// Padding). The root box is enlarged by RootScaleX/RootScaleY around its slot
// centre without affecting the canvas.
//
// Nodes are returned level by level in row order.
func SolveHierarchy(v *graph.Validated, lv Levels, cfg Config) ([]plan.LayoutNode, Canvas) {
	maxLevelWidth := float64(max(lv.MaxWidth()-1, 0)) * cfg.HSpacing

	type slot struct {
		id    string
		level int
		x, y  float64
	}
	slots := make([]slot, 0, len(v.Nodes))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for level, row := range lv.Rows {
		levelWidth := float64(max(len(row)-1, 0)) * cfg.HSpacing
		startX := cfg.Padding + (maxLevelWidth-levelWidth)/2
		y := cfg.Padding + float64(level)*cfg.VSpacing
		for i, id := range row {
			x := startX + float64(i)*cfg.HSpacing
			slots = append(slots, slot{id: id, level: level, x: x, y: y})
			minX, minY = math.Min(minX, x), math.Min(minY, y)
			maxX, maxY = math.Max(maxX, x+cfg.NodeWidth), math.Max(maxY, y+cfg.NodeHeight)
		}
	}
	if len(slots) == 0 {
		return []plan.LayoutNode{}, Canvas{Width: 2 * cfg.Padding, Height: 2 * cfg.Padding}
	}

	dx, dy := cfg.Padding-minX, cfg.Padding-minY
	nodes := make([]plan.LayoutNode, 0, len(slots))
	for _, s := range slots {
		n, _ := v.Node(s.id)
		ln := plan.LayoutNode{
			Node:   n,
			Level:  s.level,
			X:      s.x + dx,
			Y:      s.y + dy,
			Width:  cfg.NodeWidth,
			Height: cfg.NodeHeight,
			Root:   s.id == v.Root,
		}
		ln.CX = ln.X + ln.Width/2
		ln.CY = ln.Y + ln.Height/2
		if ln.Root {
			ln.Width = cfg.NodeWidth * cfg.RootScaleX
			ln.Height = cfg.NodeHeight * cfg.RootScaleY
			ln.X = ln.CX - ln.Width/2
			ln.Y = ln.CY - ln.Height/2
		}
		setLabel(&ln, cfg)
		nodes = append(nodes, ln)
	}

	return nodes, Canvas{
		Width:  (maxX - minX) + 2*cfg.Padding,
		Height: (maxY - minY) + 2*cfg.Padding,
	}
}

func setLabel(n *plan.LayoutNode, cfg Config) {
	n.Lines = WrapLabel(n.DisplayLabel(), cfg.WrapWidth)
	n.LabelDY = LabelDY(len(n.Lines), cfg.LineHeight)
}
