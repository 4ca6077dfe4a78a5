package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

func samplePlan() *plan.RenderPlan {
	return &plan.RenderPlan{
		Template: plan.TemplateHierarchy,
		Title:    "Machine Learning",
		Nodes: []plan.LayoutNode{
			{Node: graph.Node{ID: "ml", Label: "Machine Learning"}, Root: true, Lines: []string{"Machine Learning"}},
			{Node: graph.Node{ID: "sl", Label: "Supervised"}, Level: 1, Lines: []string{"Supervised"}},
			{Node: graph.Node{ID: "ul", Label: "Unsupervised", Color: "#10B981"}, Level: 1, Lines: []string{"Unsupervised"}},
		},
		Connectors: []plan.Connector{{From: "ml", To: "sl"}, {From: "ml", To: "ul"}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(samplePlan(), Options{})
	for _, want := range []string{
		"digraph G {",
		`label="Machine Learning";`,
		`"ml" [label="Machine Learning", penwidth=2, fillcolor="#EEF2FF"];`,
		`"ul" [label="Unsupervised", color="#10B981"];`,
		`{ rank=same; "ml"; }`,
		`{ rank=same; "sl"; "ul"; }`,
		`"ml" -> "sl";`,
		`"ml" -> "ul";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(samplePlan(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Supervised\nlevel: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTSectors(t *testing.T) {
	p := &plan.RenderPlan{
		Template: plan.TemplateComparison,
		Nodes: []plan.LayoutNode{
			{Node: graph.Node{ID: "py", Label: "Python"}, Lines: []string{"Python"}, Sector: 1},
			{Node: graph.Node{ID: "js", Label: "JavaScript"}, Lines: []string{"JavaScript"}, Sector: 2},
		},
		Sectors: []plan.Sector{
			{NodeID: "py", Color: "#4F46E5", Letter: "P", Characteristic: "Dinámico"},
			{NodeID: "js", Color: "#0EA5E9", Letter: "J", Characteristic: "Web"},
		},
	}
	dot := ToDOT(p, Options{Detailed: true})
	if strings.Contains(dot, "rank=same") {
		t.Error("sector plans should not emit ranks")
	}
	if !strings.Contains(dot, `"py" [label="Python\nP: Dinámico", color="#4F46E5", penwidth=3];`) {
		t.Errorf("sector node missing:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("sector plans have no edges")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(samplePlan(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "Supervised") {
		t.Errorf("unexpected SVG output: %.200s", s)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", got, want)
	}
}
