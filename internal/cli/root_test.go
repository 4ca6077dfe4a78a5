package cli

import (
	"testing"

	"github.com/paupedrejon/conceptmap/pkg/buildinfo"
)

func TestSetVersion(t *testing.T) {
	orig := buildinfo.Get()
	t.Cleanup(func() { SetVersion(orig.Version, orig.Commit, orig.Date) })

	SetVersion("1.0.0", "abc123", "2024-01-01")

	got := buildinfo.Get()
	if got.Version != "1.0.0" {
		t.Errorf("version = %q, want %q", got.Version, "1.0.0")
	}
	if got.Commit != "abc123" {
		t.Errorf("commit = %q, want %q", got.Commit, "abc123")
	}
	if got.Date != "2024-01-01" {
		t.Errorf("date = %q, want %q", got.Date, "2024-01-01")
	}
}

func TestSetVersionEmptyKeepsDefaults(t *testing.T) {
	before := buildinfo.Get()
	SetVersion("", "", "")

	if got := buildinfo.Get(); got != before {
		t.Errorf("SetVersion with empty values changed build info: %+v -> %+v", before, got)
	}
}
