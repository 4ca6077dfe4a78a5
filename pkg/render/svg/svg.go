package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/paupedrejon/conceptmap/pkg/layout"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// Neutral colours for hierarchy diagrams.
const (
	nodeFill       = "#FFFFFF"
	nodeStroke     = "#CBD5E1"
	rootFill       = "#EEF2FF"
	connectorColor = "#94A3B8"
	textColor      = "#0F172A"
	mutedColor     = "#475569"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	lineHeight float64
	fontSize   float64
	background string
}

// WithLineHeight sets the distance between wrapped label lines; it should
// match the layout's LineHeight.
func WithLineHeight(h float64) Option { return func(r *renderer) { r.lineHeight = h } }

// WithFontSize sets the label font size.
func WithFontSize(s float64) Option { return func(r *renderer) { r.fontSize = s } }

// WithBackground paints the canvas with colour c.
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }

// Render returns the SVG document for p.
func Render(p *plan.RenderPlan, opts ...Option) []byte {
	r := renderer{lineHeight: layout.DefaultLineHeight, fontSize: 18}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif">`+"\n",
		p.CanvasWidth, p.CanvasHeight, p.CanvasWidth, p.CanvasHeight)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(r.background))
	}
	if p.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(p.Title))
	}

	switch p.Template {
	case plan.TemplateComparison, plan.TemplateQuadrant:
		r.renderSectors(&buf, p)
	default:
		r.renderHierarchy(&buf, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderHierarchy(buf *bytes.Buffer, p *plan.RenderPlan) {
	buf.WriteString(`  <g class="connectors">` + "\n")
	for _, c := range p.Connectors {
		fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="2" data-from="%s" data-to="%s"/>`+"\n",
			c.D(), connectorColor, escape(c.From), escape(c.To))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for i := range p.Nodes {
		n := &p.Nodes[i]
		fill, stroke := nodeFill, nodeStroke
		if n.Root {
			fill = rootFill
		}
		if n.Color != "" {
			stroke = n.Color
		}
		fmt.Fprintf(buf, `    <g class="node" id="node-%s">`+"\n", escape(n.ID))
		fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="16" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			n.X, n.Y, n.Width, n.Height, fill, escape(stroke))
		r.renderLines(buf, n, n.CY+n.LabelDY)
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderSectors(buf *bytes.Buffer, p *plan.RenderPlan) {
	if p.Circle == nil {
		return
	}
	c := *p.Circle
	byID := make(map[string]plan.Sector, len(p.Sectors))

	buf.WriteString(`  <g class="sectors">` + "\n")
	for _, s := range p.Sectors {
		byID[s.NodeID] = s
		fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="#FFFFFF" stroke-width="4"/>`+"\n", WedgePath(c, s), escape(s.Color))
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" font-weight="bold" fill="#FFFFFF">%s</text>`+"\n",
			s.LabelX, s.LabelY, r.fontSize*2, escape(s.Letter))
	}
	fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="#FFFFFF"/>`+"\n", c.CX, c.CY, c.R*0.35)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
		c.CX, c.CY, r.fontSize, textColor, escape(p.Center))
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for i := range p.Nodes {
		n := &p.Nodes[i]
		s := byID[n.ID]
		fmt.Fprintf(buf, `    <g class="node" id="node-%s">`+"\n", escape(n.ID))
		fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="16" fill="%s" stroke="%s" stroke-width="3"/>`+"\n",
			n.X, n.Y, n.Width, n.Height, nodeFill, escape(s.Color))
		top := n.CY + n.LabelDY - r.lineHeight/2
		r.renderLines(buf, n, top)
		if s.Characteristic != "" {
			y := top + float64(len(n.Lines))*r.lineHeight + r.lineHeight/2
			fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
				n.CX, y, r.fontSize*0.8, mutedColor, escape(s.Characteristic))
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

// renderLines writes the wrapped label centred on n.CX, first line at y.
func (r *renderer) renderLines(buf *bytes.Buffer, n *plan.LayoutNode, y float64) {
	lines := n.Lines
	if len(lines) == 0 {
		lines = []string{n.DisplayLabel()}
	}
	for i, line := range lines {
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
			n.CX, y+float64(i)*r.lineHeight, r.fontSize, textColor, escape(line))
	}
}

// WedgePath returns the SVG path of sector s: centre, arc start, clockwise arc
// to arc end, close.
func WedgePath(c plan.Circle, s plan.Sector) string {
	span := s.EndAngle - s.StartAngle
	if span >= 360 {
		return fmt.Sprintf("M %.2f,%.2f m -%.2f,0 a %.2f,%.2f 0 1,1 %.2f,0 a %.2f,%.2f 0 1,1 -%.2f,0 Z",
			c.CX, c.CY, c.R, c.R, c.R, 2*c.R, c.R, c.R, 2*c.R)
	}
	x0, y0 := pointAt(c, s.StartAngle)
	x1, y1 := pointAt(c, s.EndAngle)
	large := 0
	if span > 180 {
		large = 1
	}
	return fmt.Sprintf("M %.2f,%.2f L %.2f,%.2f A %.2f,%.2f 0 %d,1 %.2f,%.2f Z",
		c.CX, c.CY, x0, y0, c.R, c.R, large, x1, y1)
}

// pointAt maps degrees clockwise from 12 o'clock to the circle's rim.
func pointAt(c plan.Circle, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return c.CX + c.R*math.Sin(rad), c.CY - c.R*math.Cos(rad)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
