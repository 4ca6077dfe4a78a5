package classify

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/graph"
	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// QuadrantSize is the number of children a quadrant shows.
const QuadrantSize = 4

// Reasons recorded on a Result.
const (
	ReasonTitle        = "title"
	ReasonTwoRoots     = "two-roots"
	ReasonRootChildren = "root-children"
	ReasonTitleLabels  = "title-labels"
	ReasonNonRoot      = "first-non-root"
	ReasonFirstNodes   = "first-nodes"
	ReasonUnresolved   = "unresolved-comparison"
	ReasonChildren     = "children"
)

var (
	titleMarkers    = []string{" vs ", " versus", " contra ", " vs. "}
	comparisonWords = []string{"comparación", "comparar", "entre", "vs", "versus"}
	vsWordRe        = regexp.MustCompile(`\bvs\b`)
	vsSplitRe       = regexp.MustCompile(`(?i)^\s*(.+?)\s+(?:vs\.?|versus|contra)\s+(.+?)\s*$`)
	sideTrimCutset  = " \t\"'¿?¡!.,;:()[]"
)

// Result is the template chosen for a graph.
type Result struct {
	Template plan.Template

	// Entities are the compared nodes (2), the quadrant nodes (4), or the
	// root's children for a hierarchy.
	Entities []graph.Node

	// Reason names the rule that decided the entities.
	Reason string

	Diagnostics []errors.Diagnostic
}

// Classify chooses a template for v.
func Classify(v *graph.Validated) Result {
	heading := Heading(v)
	children := rootChildren(v)

	flagged := hasTitleMarker(heading)
	var entities []graph.Node
	reason := ""
	if flagged {
		reason = ReasonTitle
	}

	switch {
	case len(v.Roots) == 2:
		flagged = true
		entities = nodesByID(v, v.Roots)
		reason = ReasonTwoRoots
	case len(v.Roots) == 1 && len(children) == 2 && containsAny(heading, comparisonWords):
		flagged = true
		entities = children
		reason = ReasonRootChildren
	}

	if flagged {
		if len(entities) < 2 {
			entities, reason = resolveComparison(v)
		}
		if len(entities) == 2 {
			return Result{Template: plan.TemplateComparison, Entities: entities, Reason: reason}
		}
		return Result{
			Template: plan.TemplateHierarchy,
			Entities: children,
			Reason:   ReasonUnresolved,
			Diagnostics: []errors.Diagnostic{
				errors.Diagnosef(errors.ErrCodeUnresolvedComparison, "comparison flagged but two distinct entities could not be resolved"),
			},
		}
	}

	if len(children) >= QuadrantSize {
		return Result{Template: plan.TemplateQuadrant, Entities: children[:QuadrantSize], Reason: ReasonChildren}
	}
	return Result{Template: plan.TemplateHierarchy, Entities: children, Reason: ReasonChildren}
}

// Heading returns the lower-cased title, or the lower-cased root label when
// the graph has no title.
func Heading(v *graph.Validated) string {
	text := v.Title
	if text == "" {
		if root, ok := v.Node(v.Root); ok {
			text = root.DisplayLabel()
		}
	}
	return cases.Lower(language.Und).String(text)
}

// resolveComparison runs the fallback chain for a flagged comparison.
func resolveComparison(v *graph.Validated) ([]graph.Node, string) {
	if pair := matchTitleSides(v); len(pair) == 2 {
		return pair, ReasonTitleLabels
	}

	var nonRoot []graph.Node
	for _, n := range v.Nodes {
		if n.ID != v.Root {
			nonRoot = append(nonRoot, n)
			if len(nonRoot) == 2 {
				return nonRoot, ReasonNonRoot
			}
		}
	}

	if len(v.Nodes) >= 2 {
		return slices.Clone(v.Nodes[:2]), ReasonFirstNodes
	}
	return nil, ReasonUnresolved
}

// matchTitleSides splits "<A> vs <B>" and maps each side to a node label by
// case-insensitive containment in either direction.
func matchTitleSides(v *graph.Validated) []graph.Node {
	m := vsSplitRe.FindStringSubmatch(v.Title)
	if m == nil {
		return nil
	}
	caser := cases.Lower(language.Und)
	a := matchLabel(v, caser.String(strings.Trim(m[1], sideTrimCutset)), "")
	if a == nil {
		return nil
	}
	b := matchLabel(v, caser.String(strings.Trim(m[2], sideTrimCutset)), a.ID)
	if b == nil {
		return nil
	}
	return []graph.Node{*a, *b}
}

func matchLabel(v *graph.Validated, side, exclude string) *graph.Node {
	if side == "" {
		return nil
	}
	caser := cases.Lower(language.Und)
	for i := range v.Nodes {
		n := &v.Nodes[i]
		if n.ID == exclude {
			continue
		}
		label := caser.String(strings.TrimSpace(n.DisplayLabel()))
		if label == "" {
			continue
		}
		if strings.Contains(label, side) || strings.Contains(side, label) {
			return n
		}
	}
	return nil
}

// rootChildren returns the root's direct children in array order, or every
// non-root node when the graph has no edges.
func rootChildren(v *graph.Validated) []graph.Node {
	if len(v.Edges) == 0 {
		var out []graph.Node
		for _, n := range v.Nodes {
			if n.ID != v.Root {
				out = append(out, n)
			}
		}
		return out
	}

	ids := slices.DeleteFunc(slices.Clone(v.Children(v.Root)), func(id string) bool { return id == v.Root })
	slices.SortFunc(ids, func(a, b string) int { return v.Index(a) - v.Index(b) })
	return nodesByID(v, ids)
}

func nodesByID(v *graph.Validated, ids []string) []graph.Node {
	out := make([]graph.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := v.Node(id); ok {
			out = append(out, n)
		}
	}
	return out
}

func hasTitleMarker(heading string) bool {
	return containsAny(heading, titleMarkers) || vsWordRe.MatchString(heading)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
