package graph

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalSpec converts a Spec to indented JSON bytes.
func MarshalSpec(s Spec) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteSpec writes a Spec as JSON to an io.Writer.
func WriteSpec(s Spec, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSpec decodes strict JSON from r and validates it.
// Use pkg/extract for untrusted text that may need repair.
func ReadSpec(r io.Reader) (*Validated, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Validate(raw)
}

// ReadSpecFile reads a JSON file and returns the validated graph.
func ReadSpecFile(path string) (*Validated, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSpec(f)
}
