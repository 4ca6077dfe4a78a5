package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/layout"
)

// isolate points the XDG directories at a temp dir so the host's config and
// cache never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("cache-backend", "", "")
	fs.String("cache-dir", "", "")
	fs.Duration("cache-ttl", 0, "")
	fs.String("addr", "", "")
	fs.Bool("no-cache", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("output", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, filepath.Join(dir, "cache", AppName), cfg.Cache.Dir)
	assert.Equal(t, cache.TTLPlan, cfg.Cache.TTL)
	assert.Equal(t, DefaultMemorySize, cfg.Cache.MemorySize)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, cache.DefaultRedisPrefix, cfg.Redis.Prefix)
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout)
	assert.Empty(t, cfg.File)
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "conceptmap.yaml", `
cache:
  backend: memory
  memory_size: 64
  ttl: 1h
server:
  addr: ":9090"
layout:
  node_width: 300
  wrap_width: 20
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, cache.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 64, cfg.Cache.MemorySize)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 300.0, cfg.Layout.NodeWidth)
	assert.Equal(t, 20, cfg.Layout.WrapWidth)
	assert.Equal(t, layout.DefaultNodeHeight, cfg.Layout.NodeHeight)
}

func TestLoadTOML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "conceptmap.toml", `
[cache]
backend = "redis"

[redis]
addr = "cache.internal:6379"
db = 2

[layout]
v_spacing = 250.0
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, cache.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 250.0, cfg.Layout.VSpacing)
}

func TestLoadSearchesConfigDir(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "config", AppName)
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	path := writeFile(t, confDir, "conceptmap.yml", "log:\n  level: warn\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "conceptmap.yaml", "cache:\n  backend: memory\nlayout:\n  node_width: 300\n")
	t.Setenv("CONCEPTMAP_CACHE__BACKEND", "none")
	t.Setenv("CONCEPTMAP_LAYOUT__NODE_WIDTH", "280")
	t.Setenv("CONCEPTMAP_SERVER__ADDR", "127.0.0.1:7000")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
	assert.Equal(t, 280.0, cfg.Layout.NodeWidth)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CONCEPTMAP_CACHE__BACKEND", "memory")
	t.Setenv("CONCEPTMAP_SERVER__ADDR", ":7000")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--cache-backend", "mongo", "--cache-ttl", "30m", "-v"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, cache.BackendMongo, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// --addr was not set, so the env value stands.
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoadNoCacheFlag(t *testing.T) {
	isolate(t)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--no-cache", "--output", "x.svg"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		code errors.Code
	}{
		{name: "unknown backend", body: "cache:\n  backend: s3\n", code: errors.ErrCodeInvalidConfig},
		{name: "unknown log level", body: "log:\n  level: loud\n", code: errors.ErrCodeInvalidConfig},
		{name: "negative geometry", body: "layout:\n  padding: -5\n", code: errors.ErrCodeInvalidConfig},
		{name: "negative ttl", body: "log:\n  level: info\n", env: map[string]string{"CONCEPTMAP_CACHE__TTL": "-1h"}, code: errors.ErrCodeInvalidConfig},
		{name: "bad yaml", body: "cache: [\n", code: errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, dir, "conceptmap.yaml", tt.body)

			_, err := Load(path, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "code = %s", errors.GetCode(err))
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"CONCEPTMAP_CACHE__BACKEND":     "cache.backend",
		"CONCEPTMAP_LAYOUT__NODE_WIDTH": "layout.node_width",
		"CONCEPTMAP_REDIS__ADDR":        "redis.addr",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestCacheOptions(t *testing.T) {
	cfg := Config{
		Cache: CacheConfig{Backend: cache.BackendMemory, Dir: "/tmp/x", MemorySize: 8},
		Redis: cache.RedisConfig{Addr: "r:1"},
		Mongo: cache.MongoConfig{URI: "mongodb://m"},
	}
	opts := cfg.CacheOptions()
	assert.Equal(t, cache.BackendMemory, opts.Backend)
	assert.Equal(t, "/tmp/x", opts.Dir)
	assert.Equal(t, 8, opts.MemorySize)
	assert.Equal(t, "r:1", opts.Redis.Addr)
	assert.Equal(t, "mongodb://m", opts.Mongo.URI)
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/custom-cache", AppName), dir)
}
