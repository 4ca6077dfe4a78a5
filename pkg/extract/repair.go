package extract

import (
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Repair makes a single best-effort attempt to turn truncated JSON into a
// decodable document. It is not iterated: callers decode its output once.
func Repair(s string) string {
	balanced := Balance(s)
	if fixed, err := jsonrepair.JSONRepair(balanced); err == nil && fixed != "" {
		return fixed
	}
	return balanced
}

// Balance closes whatever s left open.
//
// Brackets inside string literals are ignored. An unterminated string is
// closed, a dangling key (`"label":`) receives the placeholder value "", a
// bare key with no colon (`,"lab`) is dropped along with its comma, a
// trailing comma is dropped, and missing closers are appended innermost
// first. For `{"nodes":[{"id":"a"}],"edges":[` that appends "]}".
func Balance(s string) string {
	var (
		stack    []byte
		inString bool
		escaped  bool

		lastSig  byte // last non-space byte outside strings
		strStart = -1 // offset of the most recent opening quote
		strAfter byte // lastSig when that string opened
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				lastSig = c
			}
			continue
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '"':
			inString = true
			strStart, strAfter = i, lastSig
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if n := len(stack); n > 0 && stack[n-1] == opener(c) {
				stack = stack[:n-1]
			}
		}
		lastSig = c
	}

	out := s
	if inString {
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
	}
	out = strings.TrimRight(out, " \t\r\n")

	// A string that ends the text right after '{' or ',' inside an object is
	// a key that never got its colon.
	if n := len(stack); n > 0 && stack[n-1] == '{' && strStart >= 0 &&
		strings.HasSuffix(out, `"`) && (strAfter == '{' || strAfter == ',') {
		out = strings.TrimRight(out[:strStart], " \t\r\n")
	}

	switch {
	case strings.HasSuffix(out, ":"):
		out += `""`
	case strings.HasSuffix(out, ","):
		out = strings.TrimRight(strings.TrimSuffix(out, ","), " \t\r\n")
	}

	var b strings.Builder
	b.Grow(len(out) + len(stack))
	b.WriteString(out)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(closer(stack[i]))
	}
	return b.String()
}

func opener(c byte) byte {
	if c == '}' {
		return '{'
	}
	return '['
}

func closer(c byte) byte {
	if c == '{' {
		return '}'
	}
	return ']'
}
