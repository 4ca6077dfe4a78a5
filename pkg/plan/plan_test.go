package plan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/graph"
)

func TestConnectorD(t *testing.T) {
	c := Connector{
		Start: Point{10, 20},
		C1:    Point{10, 30.5},
		C2:    Point{40, 59.5},
		End:   Point{40, 70},
	}
	want := "M 10.00,20.00 C 10.00,30.50 40.00,59.50 40.00,70.00"
	if got := c.D(); got != want {
		t.Errorf("D() = %q, want %q", got, want)
	}
}

func TestAnchors(t *testing.T) {
	n := LayoutNode{X: 100, Y: 50, Width: 340, Height: 140}
	if got := n.Bottom(); got != (Point{270, 190}) {
		t.Errorf("Bottom() = %v", got)
	}
	if got := n.Top(); got != (Point{270, 50}) {
		t.Errorf("Top() = %v", got)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Hierarchy", `{"template":"hierarchy","nodes":[{"id":"a"}]}`, ""},
		{"UnknownTemplate", `{"template":"radial","nodes":[{"id":"a"}]}`, "unknown template"},
		{"NoNodes", `{"template":"hierarchy","nodes":[]}`, "must contain nodes"},
		{"ComparisonWithoutSectors", `{"template":"comparison","nodes":[{"id":"a"}]}`, "2 sectors"},
		{"BadJSON", `{`, "unmarshal plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unmarshal: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	p := &RenderPlan{
		Template:     TemplateHierarchy,
		Nodes:        []LayoutNode{{Node: graph.Node{ID: "a", Label: "AI"}, X: 74.5, Y: 93, Width: 391, Height: 154, Root: true, Lines: []string{"AI"}}},
		Connectors:   []Connector{},
		CanvasWidth:  540,
		CanvasHeight: 340,
	}
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := WriteFile(p, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	n, ok := got.Node("a")
	if !ok || n.Label != "AI" || !n.Root || n.Width != 391 {
		t.Errorf("node = %+v", n)
	}
	if rows := got.Levels(); len(rows[0]) != 1 {
		t.Errorf("Levels() = %v", rows)
	}
}

func TestTemplate(t *testing.T) {
	if TemplateComparison.SectorCount() != 2 || TemplateQuadrant.SectorCount() != 4 || TemplateHierarchy.SectorCount() != 0 {
		t.Error("SectorCount mismatch")
	}
	if Template("x").Valid() {
		t.Error("unknown template should be invalid")
	}
}
