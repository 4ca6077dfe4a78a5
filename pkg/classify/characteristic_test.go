package classify

import (
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/graph"
)

func TestCharacteristic(t *testing.T) {
	s := graph.Spec{
		Nodes: []graph.Node{
			{ID: "explicit", Label: "Go", Characteristic: "  Compilado ", Description: "Ignored."},
			{ID: "parent", Label: "Python"},
			{ID: "kid", Label: "Dinámico"},
			{ID: "dot", Label: "Rust", Description: "Seguro en memoria. Sin GC."},
			{ID: "colon", Label: "C", Description: "Ventajas: velocidad"},
			{ID: "bare", Label: "Java"},
		},
		Edges: []graph.Edge{{From: "parent", To: "kid"}},
	}
	v, err := graph.FromSpec(s)
	if err != nil {
		t.Fatalf("FromSpec: %v", err)
	}

	tests := []struct {
		id   string
		want string
	}{
		{"explicit", "Compilado"},
		{"parent", "Dinámico"},
		{"dot", "Seguro en memoria"},
		{"colon", "Ventajas"},
		{"bare", DefaultCharacteristic},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := v.Node(tt.id)
			if !ok {
				t.Fatalf("node %q missing", tt.id)
			}
			if got := Characteristic(v, n); got != tt.want {
				t.Errorf("Characteristic(%s) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestLetter(t *testing.T) {
	tests := []struct {
		name string
		node graph.Node
		want string
	}{
		{"Explicit", graph.Node{ID: "a", Label: "Alpha", Letter: "Z"}, "Z"},
		{"FromLabel", graph.Node{ID: "a", Label: "árbol"}, "Á"},
		{"FromID", graph.Node{ID: "beta"}, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Letter(tt.node); got != tt.want {
				t.Errorf("Letter() = %q, want %q", got, tt.want)
			}
		})
	}
}
