package graph_test

import (
	"fmt"

	"github.com/paupedrejon/conceptmap/pkg/graph"
)

func ExampleValidate() {
	raw := map[string]any{
		"title": "Machine learning",
		"nodes": []any{
			map[string]any{"id": "ml", "label": "Machine learning"},
			map[string]any{"id": "sl", "label": "Supervised"},
			map[string]any{"id": "ul", "label": "Unsupervised"},
		},
		"edges": []any{
			map[string]any{"from": "ml", "to": "sl"},
			map[string]any{"from": "ml", "to": "ul"},
			map[string]any{"from": "ml", "to": "rl"},
		},
	}

	v, err := graph.Validate(raw)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("root:", v.Root)
	fmt.Println("children:", v.Children(v.Root))
	for _, d := range v.Diagnostics {
		fmt.Println(d)
	}
	// Output:
	// root: ml
	// children: [sl ul]
	// DANGLING_EDGE: edge "ml" -> "rl" references an unknown node
}
