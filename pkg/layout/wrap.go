package layout

import (
	"strings"
	"unicode/utf8"
)

// WrapLabel greedily packs the words of label into lines of at most width
// runes. A word longer than width occupies its own line. An empty label
// yields a single empty line.
func WrapLabel(label string, width int) []string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	cur, curLen := words[0], utf8.RuneCountInString(words[0])
	for _, w := range words[1:] {
		wl := utf8.RuneCountInString(w)
		if curLen+1+wl <= width {
			cur += " " + w
			curLen += 1 + wl
			continue
		}
		lines = append(lines, cur)
		cur, curLen = w, wl
	}
	return append(lines, cur)
}

// LabelDY is the vertical offset of the first of n lines from the box
// centre, so the block of lines is centred.
func LabelDY(n int, lineHeight float64) float64 {
	if n <= 1 {
		return 0
	}
	return -float64(n-1) * lineHeight / 2
}
