// Package config loads conceptmap settings from defaults, a config file,
// the environment and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/layout"
)

// AppName names the config file, the env prefix and the cache directory.
const AppName = "conceptmap"

// Defaults.
const (
	DefaultBackend    = cache.BackendFile
	DefaultMemorySize = 512
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
	DefaultMongoDB    = AppName
	DefaultMongoColl  = "plans"
	DefaultRedisAddr  = "localhost:6379"

	DefaultShutdownTimeout = 10 * time.Second
)

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// CacheConfig selects the plan cache backend.
type CacheConfig struct {
	Backend    string        `koanf:"backend"`
	Dir        string        `koanf:"dir"`
	TTL        time.Duration `koanf:"ttl"`
	MemorySize int           `koanf:"memory_size"`
}

// ServerConfig configures `conceptmap serve`.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Config is the full set of settings.
type Config struct {
	Cache  CacheConfig       `koanf:"cache"`
	Redis  cache.RedisConfig `koanf:"redis"`
	Mongo  cache.MongoConfig `koanf:"mongo"`
	Server ServerConfig      `koanf:"server"`
	Layout layout.Config     `koanf:"layout"`
	Log    LogConfig         `koanf:"log"`

	// File is the config file that was read, empty when none was found.
	File string `koanf:"-"`
}

// Validate checks enumerated values and fills layout defaults.
func (c *Config) Validate() error {
	if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "cache.backend", c.Cache.Backend, cache.Backends...); err != nil {
		return err
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "log.level", c.Log.Level, LogLevels...); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return c.Layout.ValidateAndSetDefaults()
}

// CacheOptions converts the cache settings for cache.New.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:    c.Cache.Backend,
		Dir:        c.Cache.Dir,
		MemorySize: c.Cache.MemorySize,
		Redis:      c.Redis,
		Mongo:      c.Mongo,
	}
}

// CacheDir returns the cache directory using XDG standard (~/.cache/conceptmap/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
