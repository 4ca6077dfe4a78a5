package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the level (or sector characteristic) under each label.
	Detailed bool
}

// ToDOT converts a plan to Graphviz DOT.
func ToDOT(p *plan.RenderPlan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	if p.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", p.Title)
	}
	buf.WriteString("\n")

	sectors := make(map[string]plan.Sector, len(p.Sectors))
	for _, s := range p.Sectors {
		sectors[s.NodeID] = s
	}

	for _, n := range p.Nodes {
		s, inSector := sectors[n.ID]
		label := fmtLabel(n, s, inSector, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, s, inSector, label), ", "))
	}

	if len(p.Sectors) == 0 {
		levels := p.Levels()
		keys := make([]int, 0, len(levels))
		for lv := range levels {
			keys = append(keys, lv)
		}
		sort.Ints(keys)
		for _, lv := range keys {
			ids := make([]string, len(levels[lv]))
			for i, id := range levels[lv] {
				ids[i] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}

	buf.WriteString("\n")
	for _, c := range p.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n plan.LayoutNode, s plan.Sector, inSector, detailed bool) string {
	label := strings.Join(n.Lines, "\n")
	if label == "" {
		label = n.DisplayLabel()
	}
	if !detailed {
		return label
	}
	if inSector {
		return fmt.Sprintf("%s\n%s: %s", label, s.Letter, s.Characteristic)
	}
	return fmt.Sprintf("%s\nlevel: %d", label, n.Level)
}

func fmtAttrs(n plan.LayoutNode, s plan.Sector, inSector bool, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case inSector:
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Color), "penwidth=3")
	case n.Color != "":
		attrs = append(attrs, fmt.Sprintf("color=%q", n.Color))
	}
	if n.Root {
		attrs = append(attrs, "penwidth=2", "fillcolor=\"#EEF2FF\"")
	}
	return attrs
}

// RenderSVG lays out DOT source with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with a plain
// viewBox and pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
