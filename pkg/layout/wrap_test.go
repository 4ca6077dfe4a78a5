package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrapLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		width int
		want  []string
	}{
		{"Empty", "", 18, []string{""}},
		{"Short", "Python", 18, []string{"Python"}},
		{"Greedy", "Aprendizaje supervisado con etiquetas", 18, []string{"Aprendizaje", "supervisado con", "etiquetas"}},
		{"Runes", "árbol binario de búsqueda", 18, []string{"árbol binario de", "búsqueda"}},
		{"LongWord", "a Supercalifragilisticexpialidocious b", 18, []string{"a", "Supercalifragilisticexpialidocious", "b"}},
		{"CollapsesSpace", "  uno   dos  ", 18, []string{"uno dos"}},
		{"NoBudget", "uno dos", 0, []string{"uno dos"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, WrapLabel(tt.label, tt.width)); diff != "" {
				t.Errorf("WrapLabel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabelDY(t *testing.T) {
	tests := []struct {
		lines int
		want  float64
	}{
		{1, 0},
		{2, -11},
		{3, -22},
	}
	for _, tt := range tests {
		if got := LabelDY(tt.lines, 22); got != tt.want {
			t.Errorf("LabelDY(%d) = %g, want %g", tt.lines, got, tt.want)
		}
	}
}
