// Package plan defines the RenderPlan, the render-ready output of the engine.
//
// A RenderPlan is a discriminated union; check Template to know which fields
// are populated:
//
//	Hierarchy ("hierarchy"):
//	  - Nodes: every node with level, position and wrapped label
//	  - Connectors: one cubic bezier per surviving edge
//
//	Comparison ("comparison") and Quadrant ("quadrant"):
//	  - Circle, Sectors: fixed circle split in 2 or 4 sectors
//	  - Nodes: the entity content boxes, one per sector
//	  - Center: label drawn in the middle of the circle
//
// The plan carries no styling beyond node colours and the sector palette; the
// SVG/DOM renderer that consumes it is external (see pkg/render for the
// reference sinks).
package plan

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/paupedrejon/conceptmap/pkg/graph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Template selects the geometry used for a plan.
type Template string

// Templates.
const (
	TemplateComparison Template = "comparison"
	TemplateQuadrant   Template = "quadrant"
	TemplateHierarchy  Template = "hierarchy"
)

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	switch t {
	case TemplateComparison, TemplateQuadrant, TemplateHierarchy:
		return true
	}
	return false
}

// SectorCount is 2 for Comparison, 4 for Quadrant and 0 otherwise.
func (t Template) SectorCount() int {
	switch t {
	case TemplateComparison:
		return 2
	case TemplateQuadrant:
		return 4
	}
	return 0
}

// RenderPlan is positioned nodes, routed connectors and canvas size.
type RenderPlan struct {
	Template     Template     `json:"template" bson:"template"`
	Title        string       `json:"title,omitempty" bson:"title,omitempty"`
	Nodes        []LayoutNode `json:"nodes" bson:"nodes"`
	Connectors   []Connector  `json:"connectors" bson:"connectors"`
	CanvasWidth  float64      `json:"canvas_width" bson:"canvas_width"`
	CanvasHeight float64      `json:"canvas_height" bson:"canvas_height"`

	// Sector templates only.
	Center  string   `json:"center,omitempty" bson:"center,omitempty"`
	Circle  *Circle  `json:"circle,omitempty" bson:"circle,omitempty"`
	Sectors []Sector `json:"sectors,omitempty" bson:"sectors,omitempty"`
}

// LayoutNode is a graph node with its computed geometry.
type LayoutNode struct {
	graph.Node `bson:",inline"`

	Level  int     `json:"level" bson:"level"`
	X      float64 `json:"x" bson:"x"` // Left edge of the drawn box
	Y      float64 `json:"y" bson:"y"` // Top edge of the drawn box
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	CX     float64 `json:"cx" bson:"cx"` // Slot anchor centre
	CY     float64 `json:"cy" bson:"cy"`
	Root   bool    `json:"root,omitempty" bson:"root,omitempty"`

	Lines   []string `json:"lines" bson:"lines"`
	LabelDY float64  `json:"label_dy" bson:"label_dy"` // First line offset from box centre

	Sector int `json:"sector,omitempty" bson:"sector,omitempty"` // 1-based; 0 for hierarchy
}

// Bottom returns the bottom-centre anchor of the box.
func (n *LayoutNode) Bottom() Point { return Point{X: n.X + n.Width/2, Y: n.Y + n.Height} }

// Top returns the top-centre anchor of the box.
func (n *LayoutNode) Top() Point { return Point{X: n.X + n.Width/2, Y: n.Y} }

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Connector is a cubic bezier from a parent anchor to a child anchor.
type Connector struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Start Point  `json:"start" bson:"start"`
	C1    Point  `json:"c1" bson:"c1"`
	C2    Point  `json:"c2" bson:"c2"`
	End   Point  `json:"end" bson:"end"`
}

// D returns the SVG path data for the connector.
func (c Connector) D() string {
	return fmt.Sprintf("M %.2f,%.2f C %.2f,%.2f %.2f,%.2f %.2f,%.2f",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

// Circle is the sector disc of the Comparison and Quadrant templates.
type Circle struct {
	CX float64 `json:"cx" bson:"cx"`
	CY float64 `json:"cy" bson:"cy"`
	R  float64 `json:"r" bson:"r"`
}

// Sector is one angular slice of the circle.
// Angles are in degrees, clockwise from 12 o'clock.
type Sector struct {
	Index          int     `json:"index" bson:"index"`
	NodeID         string  `json:"node_id" bson:"node_id"`
	StartAngle     float64 `json:"start_angle" bson:"start_angle"`
	EndAngle       float64 `json:"end_angle" bson:"end_angle"`
	Color          string  `json:"color" bson:"color"`
	Letter         string  `json:"letter" bson:"letter"`
	Characteristic string  `json:"characteristic" bson:"characteristic"`
	LabelX         float64 `json:"label_x" bson:"label_x"` // Anchor for the sector's letter
	LabelY         float64 `json:"label_y" bson:"label_y"`
}

// Node returns the layout node with the given id.
func (p *RenderPlan) Node(id string) (LayoutNode, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return LayoutNode{}, false
}

// Levels groups node ids by level, in plan order.
func (p *RenderPlan) Levels() map[int][]string {
	rows := make(map[int][]string)
	for _, n := range p.Nodes {
		rows[n.Level] = append(rows[n.Level], n.ID)
	}
	return rows
}

// Marshal serializes a plan to indented JSON bytes.
func Marshal(p *RenderPlan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal deserializes JSON bytes into a plan and checks required fields.
func Unmarshal(data []byte) (*RenderPlan, error) {
	var p RenderPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if !p.Template.Valid() {
		return nil, fmt.Errorf("unknown template %q", p.Template)
	}
	if len(p.Nodes) == 0 {
		return nil, fmt.Errorf("plan must contain nodes")
	}
	if n := p.Template.SectorCount(); n > 0 && (p.Circle == nil || len(p.Sectors) != n) {
		return nil, fmt.Errorf("%s plan must contain a circle and %d sectors", p.Template, n)
	}
	return &p, nil
}

// Write writes a plan as JSON to w.
func Write(p *RenderPlan, w io.Writer) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes a plan to a JSON file.
func WriteFile(p *RenderPlan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a plan from a JSON file.
func ReadFile(path string) (*RenderPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
