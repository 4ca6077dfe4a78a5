package errors

import (
	"strings"
	"unicode/utf8"
)

// MaxInputBytes bounds the text accepted by the engine. Diagram blocks are
// small (about twenty nodes); anything far larger is not a diagram.
const MaxInputBytes = 256 << 10

// ValidateInput rejects text the engine should not attempt to parse.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only text
//   - No text above MaxInputBytes
//   - Valid UTF-8 only
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "input text cannot be empty")
	}
	if len(text) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input too large (%d bytes, max %d)", len(text), MaxInputBytes)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "input is not valid UTF-8")
	}
	return nil
}

// ValidateChoice checks that value is one of allowed, using code on failure.
// The field name is used in the message, e.g. `invalid format: "gif" (must be one of: svg, dot, json)`.
func ValidateChoice(code Code, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
