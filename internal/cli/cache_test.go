package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
)

// isolate points the XDG directories at a temp dir so tests never touch the
// user's cache or config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCachePath(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, New(io.Discard, LogInfo), "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(dir, "cache", appName)
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCachePathFlag(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "plans")

	out, err := execute(t, New(io.Discard, LogInfo), "cache", "path", "--cache-dir", custom)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out); got != custom {
		t.Errorf("cache path = %q, want %q", got, custom)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "cache", appName)

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"plan:a", "plan:b", "artifact:c"} {
		if err := fc.Set(ctx, key, []byte(`{}`), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	if _, err := execute(t, New(io.Discard, LogInfo), "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"plan:a", "plan:b", "artifact:c"} {
		if _, ok, _ := fc.Get(ctx, key); ok {
			t.Errorf("%s survived cache clear", key)
		}
	}
}

func TestCacheClearDisabled(t *testing.T) {
	isolate(t)

	if _, err := execute(t, New(io.Discard, LogInfo), "cache", "clear", "--no-cache"); err != nil {
		t.Fatalf("cache clear --no-cache: %v", err)
	}
}

func TestCacheClearInvalidBackend(t *testing.T) {
	isolate(t)

	_, err := execute(t, New(io.Discard, LogInfo), "cache", "clear", "--cache-backend", "floppy")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}
