package extract

import (
	"strings"
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/errors"
)

func TestCandidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Bare", `{"a":1}`, `{"a":1}`},
		{"Prose", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"Fenced", "Diagram:\n```json\n{\"a\":1}\n```\nDone.", `{"a":1}`},
		{"FenceWithoutTag", "```\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"UnterminatedFence", "```json\n{\"a\":[1,", `{"a":[1,`},
		{"SkipsFenceWithoutObject", "```sh\nls\n```\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"TruncatedNoClose", `text {"nodes":[`, `{"nodes":[`},
		{"NoBrace", "just prose", ""},
		{"Empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Candidate(tt.in); got != tt.want {
				t.Errorf("Candidate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantRepaired bool
		wantCode     errors.Code
		check        func(t *testing.T, r Raw)
	}{
		{
			name: "Valid",
			in:   `{"nodes":[{"id":"a","label":"AI"}],"edges":[]}`,
			check: func(t *testing.T, r Raw) {
				if nodes, _ := r["nodes"].([]any); len(nodes) != 1 {
					t.Errorf("nodes = %v", r["nodes"])
				}
			},
		},
		{
			name:         "TruncatedEdges",
			in:           `{"nodes":[{"id":"a","label":"A"}],"edges":[`,
			wantRepaired: true,
			check: func(t *testing.T, r Raw) {
				nodes, _ := r["nodes"].([]any)
				if len(nodes) != 1 {
					t.Fatalf("nodes = %v", r["nodes"])
				}
				if n := nodes[0].(map[string]any); n["label"] != "A" {
					t.Errorf("label = %v", n["label"])
				}
			},
		},
		{
			name:         "TruncatedInsideString",
			in:           "```json\n{\"title\":\"Redes neuro",
			wantRepaired: true,
			check: func(t *testing.T, r Raw) {
				if r["title"] != "Redes neuro" {
					t.Errorf("title = %v", r["title"])
				}
			},
		},
		{
			name:         "DanglingKey",
			in:           `{"nodes":[{"id":"a","label":`,
			wantRepaired: true,
			check: func(t *testing.T, r Raw) {
				n := r["nodes"].([]any)[0].(map[string]any)
				if n["label"] != "" {
					t.Errorf("label = %v, want placeholder", n["label"])
				}
			},
		},
		{
			name:         "TruncatedBareKey",
			in:           `{"nodes":[{"id":"a","lab`,
			wantRepaired: true,
			check: func(t *testing.T, r Raw) {
				n := r["nodes"].([]any)[0].(map[string]any)
				if n["id"] != "a" || len(n) != 1 {
					t.Errorf("node = %v, want only id", n)
				}
			},
		},
		{
			name:     "NotAnObject",
			in:       `no braces here`,
			wantCode: errors.ErrCodeMalformedJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Extract(tt.in)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if res.Repaired != tt.wantRepaired {
				t.Errorf("Repaired = %v, want %v", res.Repaired, tt.wantRepaired)
			}
			if tt.check != nil {
				tt.check(t, res.Raw)
			}
		})
	}
}

func TestExtractSnippet(t *testing.T) {
	in := strings.Repeat("x", 500)
	_, err := Extract(in)
	if !errors.Is(err, errors.ErrCodeMalformedJSON) {
		t.Fatalf("err = %v, want MALFORMED_JSON", err)
	}
	snippet := errors.SnippetOf(err)
	if len(snippet) != errors.SnippetLength {
		t.Errorf("snippet length = %d, want %d", len(snippet), errors.SnippetLength)
	}
	if !strings.HasPrefix(in, snippet) {
		t.Error("snippet should be a prefix of the input")
	}
}

func TestExtractReportsRepairedFailure(t *testing.T) {
	// Balanced already, so the repair pass cannot drop the bare key.
	in := `{"nodes":[{"id":"a","lab"}]}`
	_, err := Extract(in)
	if !errors.Is(err, errors.ErrCodeMalformedJSON) {
		t.Fatalf("err = %v, want MALFORMED_JSON", err)
	}

	_, repairedErr := decode(Repair(in))
	if repairedErr == nil {
		t.Fatal("repaired text unexpectedly decodes")
	}
	e := err.(*errors.Error)
	if e.Cause == nil || e.Cause.Error() != repairedErr.Error() {
		t.Errorf("cause = %v, want the repaired decode error %v", e.Cause, repairedErr)
	}
	if !strings.Contains(e.Message, "before repair") {
		t.Errorf("message = %q, want the original decode error too", e.Message)
	}
}
