package layout

import (
	"math"

	"github.com/paupedrejon/conceptmap/pkg/classify"
	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// Start angles, in degrees clockwise from 12 o'clock.
const (
	ComparisonStartAngle = 180.0
	QuadrantStartAngle   = 270.0
)

// sectorLabelRadius places the sector letter at this fraction of the radius.
const sectorLabelRadius = 0.55

// SectorLayout is the geometry of a Comparison or Quadrant plan.
type SectorLayout struct {
	Nodes   []plan.LayoutNode
	Circle  plan.Circle
	Sectors []plan.Sector
	Center  string
	Canvas  Canvas
}

// SolveSectors lays out the template t (comparison or quadrant) for the given
// entities. Only the first t.SectorCount() entities are used.
//
// Comparison: sector 0 is the left half, sector 1 the right half, entity 0's
// box sits left of the circle and entity 1's right of it, both vertically
// centred. Quadrant: sectors run TL, TR, BR, BL; the top boxes align with the
// top of the circle, the bottom boxes with its bottom.
func SolveSectors(v *graph.Validated, t plan.Template, entities []graph.Node, cfg Config) SectorLayout {
	n := min(t.SectorCount(), len(entities))
	contentH := math.Max(cfg.CircleDiameter, cfg.NodeHeight)
	canvas := Canvas{
		Width:  2*cfg.Padding + 2*cfg.NodeWidth + 2*cfg.BoxGap + cfg.CircleDiameter,
		Height: 2*cfg.Padding + contentH,
	}
	circle := plan.Circle{CX: canvas.Width / 2, CY: canvas.Height / 2, R: cfg.CircleDiameter / 2}

	leftX := cfg.Padding
	rightX := canvas.Width - cfg.Padding - cfg.NodeWidth
	halfSpan := math.Max(circle.R, cfg.NodeHeight/2)
	topY := circle.CY - halfSpan
	bottomY := circle.CY + halfSpan - cfg.NodeHeight
	midY := circle.CY - cfg.NodeHeight/2

	start := ComparisonStartAngle
	if t == plan.TemplateQuadrant {
		start = QuadrantStartAngle
	}
	span := 0.0
	if n > 0 {
		span = 360 / float64(t.SectorCount())
	}

	out := SectorLayout{
		Nodes:   make([]plan.LayoutNode, 0, n),
		Circle:  circle,
		Sectors: make([]plan.Sector, 0, n),
		Center:  center(v),
		Canvas:  canvas,
	}
	for i, ent := range entities[:n] {
		x, y := quadrantBox(i, leftX, rightX, topY, bottomY)
		if t == plan.TemplateComparison {
			x, y = leftX, midY
			if i == 1 {
				x = rightX
			}
		}

		ln := plan.LayoutNode{
			Node:   ent,
			X:      x,
			Y:      y,
			Width:  cfg.NodeWidth,
			Height: cfg.NodeHeight,
			CX:     x + cfg.NodeWidth/2,
			CY:     y + cfg.NodeHeight/2,
			Root:   ent.ID == v.Root,
			Sector: i + 1,
		}
		setLabel(&ln, cfg)
		out.Nodes = append(out.Nodes, ln)

		s0 := math.Mod(start+float64(i)*span, 360)
		lx, ly := polar(circle, s0+span/2, circle.R*sectorLabelRadius)
		color := ent.Color
		if color == "" {
			color = PaletteColor(i)
		}
		out.Sectors = append(out.Sectors, plan.Sector{
			Index:          i,
			NodeID:         ent.ID,
			StartAngle:     s0,
			EndAngle:       s0 + span,
			Color:          color,
			Letter:         classify.Letter(ent),
			Characteristic: classify.Characteristic(v, ent),
			LabelX:         lx,
			LabelY:         ly,
		})
	}
	return out
}

// quadrantBox returns the box corner for quadrant sector i (TL, TR, BR, BL).
func quadrantBox(i int, leftX, rightX, topY, bottomY float64) (float64, float64) {
	switch i {
	case 0:
		return leftX, topY
	case 1:
		return rightX, topY
	case 2:
		return rightX, bottomY
	default:
		return leftX, bottomY
	}
}

// polar converts an angle in degrees clockwise from 12 o'clock to a point at
// radius r from the circle centre.
func polar(c plan.Circle, deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return c.CX + r*math.Sin(rad), c.CY - r*math.Cos(rad)
}

// center is the text drawn inside the circle: the title, else the root label.
func center(v *graph.Validated) string {
	if v.Title != "" {
		return v.Title
	}
	if root, ok := v.Node(v.Root); ok {
		return root.DisplayLabel()
	}
	return ""
}
