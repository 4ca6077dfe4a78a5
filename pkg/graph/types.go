package graph

// Spec is the canonical form of a concept graph.
// It is produced fresh per rendered message and never mutated afterwards.
type Spec struct {
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a concept in the graph.
type Node struct {
	ID             string `json:"id" bson:"id"`
	Label          string `json:"label,omitempty" bson:"label,omitempty"`
	Color          string `json:"color,omitempty" bson:"color,omitempty"`
	Description    string `json:"description,omitempty" bson:"description,omitempty"`
	Letter         string `json:"letter,omitempty" bson:"letter,omitempty"`                 // Single glyph for compact badges
	Characteristic string `json:"characteristic,omitempty" bson:"characteristic,omitempty"` // Short category string
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge represents a directed parent -> child relation.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}
