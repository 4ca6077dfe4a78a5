package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name       string
		nodes      int
		connectors int
		cached     bool
		want       []string
		notWant    []string
	}{
		{"Fresh", 4, 3, false, []string{"4 nodes", "3 connectors", "fresh"}, []string{"cached"}},
		{"Cached", 2, 0, true, []string{"2 nodes", "cached"}, []string{"connectors", "fresh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.nodes, tt.connectors, tt.cached)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output %q should not contain %q", out, w)
				}
			}
		})
	}
}

func TestPrintDiagnostics(t *testing.T) {
	buf := captureStdout(t)
	printDiagnostics(&pipeline.Result{
		Repaired: true,
		Diagnostics: []errors.Diagnostic{
			errors.Diagnosef(errors.ErrCodeDanglingEdge, "dropped edge a -> zz"),
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Repaired") {
		t.Errorf("first line = %q, want the repair warning", lines[0])
	}
	if !strings.Contains(lines[1], "DANGLING_EDGE") || !strings.Contains(lines[1], "a -> zz") {
		t.Errorf("second line = %q", lines[1])
	}
}
