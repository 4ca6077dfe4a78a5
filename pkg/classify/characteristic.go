package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/paupedrejon/conceptmap/pkg/graph"
)

// DefaultCharacteristic is used when a node offers nothing better.
const DefaultCharacteristic = "Característica"

// Characteristic derives the short label shown in a node's sector:
//  1. the node's explicit characteristic, trimmed;
//  2. else the display label of its first child (first surviving edge);
//  3. else the description up to the first '.' or ':', trimmed;
//  4. else DefaultCharacteristic.
func Characteristic(v *graph.Validated, n graph.Node) string {
	if c := strings.TrimSpace(n.Characteristic); c != "" {
		return c
	}
	if kids := v.Children(n.ID); len(kids) > 0 {
		if child, ok := v.Node(kids[0]); ok {
			if label := strings.TrimSpace(child.DisplayLabel()); label != "" {
				return label
			}
		}
	}
	if clause := firstClause(n.Description); clause != "" {
		return clause
	}
	return DefaultCharacteristic
}

func firstClause(desc string) string {
	if i := strings.IndexAny(desc, ".:"); i >= 0 {
		desc = desc[:i]
	}
	return strings.TrimSpace(desc)
}

// Letter returns the node's badge glyph: its explicit letter, else the first
// rune of its label upper-cased.
func Letter(n graph.Node) string {
	if l := strings.TrimSpace(n.Letter); l != "" {
		return l
	}
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(n.DisplayLabel()))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
