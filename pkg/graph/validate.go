package graph

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/paupedrejon/conceptmap/pkg/errors"
)

// Validated is a Spec whose edges all reference known nodes.
type Validated struct {
	Spec

	// Roots lists the ids of nodes with no incoming edge, in array order.
	Roots []string

	// Root is Roots[0], or the first node when Roots is empty.
	Root string

	// Dropped holds the edges that referenced unknown node ids.
	Dropped []Edge

	// Diagnostics records every non-fatal finding, in discovery order.
	Diagnostics []errors.Diagnostic

	index    map[string]int
	children map[string][]string
}

// Validate normalizes a decoded JSON object into a Validated graph.
//
// It returns an EMPTY_SPEC error when "nodes" is missing, not an array, or
// holds no usable entry. Everything else is recovered:
//   - scalar fields are coerced to strings, so numeric ids are accepted
//   - a node without "id" uses its label as id; nodes with neither are skipped
//   - a repeated id keeps the first node (DUPLICATE_NODE diagnostic)
//   - "edges" defaults to empty when missing or not an array
//   - edges with unknown endpoints are dropped (DANGLING_EDGE diagnostic)
func Validate(raw map[string]any) (*Validated, error) {
	rawNodes, ok := raw["nodes"].([]any)
	if !ok || len(rawNodes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySpec, "spec has no nodes")
	}

	v := &Validated{index: make(map[string]int, len(rawNodes))}
	v.Title = strings.TrimSpace(optString(raw, "title"))

	for i, rn := range rawNodes {
		m, ok := rn.(map[string]any)
		if !ok {
			continue
		}
		n := nodeFromMap(m)
		if n.ID == "" {
			continue
		}
		if _, dup := v.index[n.ID]; dup {
			v.Diagnostics = append(v.Diagnostics,
				errors.Diagnosef(errors.ErrCodeDuplicateNode, "node %q at index %d repeats an earlier id", n.ID, i))
			continue
		}
		v.index[n.ID] = len(v.Nodes)
		v.Nodes = append(v.Nodes, n)
	}
	if len(v.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySpec, "spec has no usable nodes")
	}

	v.Edges = []Edge{}
	rawEdges, _ := raw["edges"].([]any)
	for _, re := range rawEdges {
		m, ok := re.(map[string]any)
		if !ok {
			continue
		}
		e := Edge{From: optString(m, "from"), To: optString(m, "to")}
		_, okFrom := v.index[e.From]
		_, okTo := v.index[e.To]
		if !okFrom || !okTo {
			v.Dropped = append(v.Dropped, e)
			v.Diagnostics = append(v.Diagnostics,
				errors.Diagnosef(errors.ErrCodeDanglingEdge, "edge %q -> %q references an unknown node", e.From, e.To))
			continue
		}
		v.Edges = append(v.Edges, e)
	}

	v.resolve()
	return v, nil
}

// FromSpec validates an already typed Spec.
// The rules are the same as [Validate].
func FromSpec(s Spec) (*Validated, error) {
	nodes := make([]any, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = map[string]any{
			"id":             n.ID,
			"label":          n.Label,
			"color":          n.Color,
			"description":    n.Description,
			"letter":         n.Letter,
			"characteristic": n.Characteristic,
		}
	}
	edges := make([]any, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = map[string]any{"from": e.From, "to": e.To}
	}
	return Validate(map[string]any{"title": s.Title, "nodes": nodes, "edges": edges})
}

func (v *Validated) resolve() {
	incoming := make(map[string]bool, len(v.Nodes))
	v.children = make(map[string][]string, len(v.Nodes))
	seen := make(map[Edge]bool, len(v.Edges))
	for _, e := range v.Edges {
		incoming[e.To] = true
		if seen[e] {
			continue
		}
		seen[e] = true
		v.children[e.From] = append(v.children[e.From], e.To)
	}

	for _, n := range v.Nodes {
		if !incoming[n.ID] {
			v.Roots = append(v.Roots, n.ID)
		}
	}
	if len(v.Roots) > 0 {
		v.Root = v.Roots[0]
	} else {
		v.Root = v.Nodes[0].ID
	}
}

// Node returns the node with the given id.
func (v *Validated) Node(id string) (Node, bool) {
	i, ok := v.index[id]
	if !ok {
		return Node{}, false
	}
	return v.Nodes[i], true
}

// Index returns the array position of id, or -1.
func (v *Validated) Index(id string) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Children returns the distinct targets of edges leaving id, in edge order.
func (v *Validated) Children(id string) []string {
	return v.children[id]
}

// IsRoot reports whether id has no incoming edge.
func (v *Validated) IsRoot(id string) bool {
	for _, r := range v.Roots {
		if r == id {
			return true
		}
	}
	return false
}

func nodeFromMap(m map[string]any) Node {
	n := Node{
		ID:             strings.TrimSpace(optString(m, "id")),
		Label:          strings.TrimSpace(optString(m, "label")),
		Color:          strings.TrimSpace(optString(m, "color")),
		Description:    strings.TrimSpace(optString(m, "description")),
		Letter:         strings.TrimSpace(optString(m, "letter")),
		Characteristic: strings.TrimSpace(optString(m, "characteristic")),
	}
	if n.ID == "" {
		n.ID = n.Label
	}
	if n.Label == "" {
		n.Label = n.ID
	}
	return n
}

// optString coerces m[key] to a string. Maps, slices and nil yield "".
func optString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil, map[string]any, []any:
		return ""
	default:
		return cast.ToString(v)
	}
}
