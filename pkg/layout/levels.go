package layout

import "github.com/paupedrejon/conceptmap/pkg/graph"

// Levels is the level assignment of a graph: ordered rows of node ids.
type Levels struct {
	Rows [][]string
	of   map[string]int
}

// AssignLevels runs a BFS from the resolved root at level 0. A node reached
// from a level-L node gets level L+1; the first visit wins, so cycles
// terminate. Nodes the BFS never reaches, other root candidates included,
// are appended to level 0 after the root in array order.
func AssignLevels(v *graph.Validated) Levels {
	l := Levels{of: make(map[string]int, len(v.Nodes))}

	queue := make([]string, 0, len(v.Nodes))
	if l.visit(v.Root, 0) {
		queue = append(queue, v.Root)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		next := l.of[id] + 1
		for _, kid := range v.Children(id) {
			if l.visit(kid, next) {
				queue = append(queue, kid)
			}
		}
	}

	for _, n := range v.Nodes {
		l.visit(n.ID, 0)
	}
	return l
}

func (l *Levels) visit(id string, level int) bool {
	if _, seen := l.of[id]; seen {
		return false
	}
	l.of[id] = level
	for len(l.Rows) <= level {
		l.Rows = append(l.Rows, nil)
	}
	l.Rows[level] = append(l.Rows[level], id)
	return true
}

// LevelOf returns the level of id.
func (l Levels) LevelOf(id string) (int, bool) {
	lv, ok := l.of[id]
	return lv, ok
}

// Len is the number of levels.
func (l Levels) Len() int { return len(l.Rows) }

// MaxWidth is the size of the widest level.
func (l Levels) MaxWidth() int {
	m := 0
	for _, row := range l.Rows {
		m = max(m, len(row))
	}
	return m
}
