package extract

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/paupedrejon/conceptmap/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Raw is a decoded, not yet validated, spec object.
type Raw = map[string]any

// Result is the outcome of a successful extraction.
type Result struct {
	Raw Raw

	// Candidate is the text slice that was decoded (before repair).
	Candidate string

	// Repaired is true when the object only decoded after the repair pass.
	Repaired bool
}

// Extract locates, decodes and if necessary repairs the spec object in text.
// The only error it returns is a MALFORMED_JSON *errors.Error.
func Extract(text string) (Result, error) {
	candidate := Candidate(text)
	if candidate == "" {
		return Result{}, errors.New(errors.ErrCodeMalformedJSON, "no JSON object found").WithSnippet(strings.TrimSpace(text))
	}

	raw, err := decode(candidate)
	if err == nil {
		return Result{Raw: raw, Candidate: candidate}, nil
	}

	raw, retryErr := decode(Repair(candidate))
	if retryErr != nil {
		return Result{}, errors.Wrap(errors.ErrCodeMalformedJSON, retryErr, "decode repaired spec object (before repair: %v)", err).WithSnippet(candidate)
	}
	return Result{Raw: raw, Candidate: candidate, Repaired: true}, nil
}

// Candidate returns the slice of text most likely to hold the spec object,
// or "" when text contains no '{'.
func Candidate(text string) string {
	s := strings.TrimSpace(text)
	if fenced, ok := fencedBlock(s); ok {
		s = fenced
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return strings.TrimSpace(s[start:])
	}
	return s[start : end+1]
}

// fencedBlock returns the body of the first ``` fence that contains a '{'.
func fencedBlock(s string) (string, bool) {
	const fence = "```"
	rest := s
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			return "", false
		}
		body := rest[open+len(fence):]
		// Skip the info string ("json", "graph", ...) up to the end of line.
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.Contains(body[:nl], "{") {
			body = body[nl+1:]
		}
		closeAt := strings.Index(body, fence)
		if closeAt < 0 {
			if strings.Contains(body, "{") {
				return body, true
			}
			return "", false
		}
		if strings.Contains(body[:closeAt], "{") {
			return body[:closeAt], true
		}
		rest = body[closeAt+len(fence):]
	}
}

func decode(s string) (Raw, error) {
	var v any
	if err := json.UnmarshalFromString(s, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedJSON, "top-level JSON value is not an object")
	}
	return obj, nil
}
