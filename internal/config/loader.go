package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/paupedrejon/conceptmap/pkg/cache"
	"github.com/paupedrejon/conceptmap/pkg/errors"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: CONCEPTMAP_CACHE__BACKEND sets cache.backend.
const EnvPrefix = "CONCEPTMAP_"

// FileNames are the config file names searched for, in order.
var FileNames = []string{AppName + ".yaml", AppName + ".yml", AppName + ".toml"}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"cache-backend": "cache.backend",
	"cache-dir":     "cache.dir",
	"cache-ttl":     "cache.ttl",
	"redis-addr":    "redis.addr",
	"mongo-uri":     "mongo.uri",
	"addr":          "server.addr",
	"log-level":     "log.level",
}

// Load reads the configuration. Precedence, highest first: flags that were
// explicitly set, environment variables, the config file, defaults.
//
// cfgFile names the config file; when empty the working directory and then
// the user config directory are searched for [FileNames]. A missing file is
// not an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load defaults")
	}

	path := cfgFile
	if path == "" {
		path = findConfigFile(searchDirs()...)
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaults() map[string]interface{} {
	dir, _ := CacheDir()
	return map[string]interface{}{
		"cache.backend":           DefaultBackend,
		"cache.dir":               dir,
		"cache.ttl":               cache.TTLPlan,
		"cache.memory_size":       DefaultMemorySize,
		"redis.addr":              DefaultRedisAddr,
		"redis.prefix":            cache.DefaultRedisPrefix,
		"mongo.database":          DefaultMongoDB,
		"mongo.collection":        DefaultMongoColl,
		"server.addr":             DefaultAddr,
		"server.shutdown_timeout": DefaultShutdownTimeout,
		"log.level":               DefaultLogLevel,
	}
}

// envKey maps CONCEPTMAP_LAYOUT__NODE_WIDTH to layout.node_width.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func flagKey(flags *pflag.FlagSet, f *pflag.Flag) (string, interface{}) {
	switch f.Name {
	case "no-cache":
		if v, _ := flags.GetBool(f.Name); v {
			return "cache.backend", cache.BackendNone
		}
		return "", nil
	case "verbose":
		if v, _ := flags.GetBool(f.Name); v {
			return "log.level", "debug"
		}
		return "", nil
	}
	if key, ok := flagKeys[f.Name]; ok {
		return key, posflag.FlagVal(flags, f)
	}
	return "", nil
}

func searchDirs() []string {
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, AppName))
	}
	return dirs
}

// findConfigFile returns the first of FileNames present in dirs.
// Returns empty string if not found.
func findConfigFile(dirs ...string) string {
	for _, dir := range dirs {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlParser{}
	}
	return yaml.Parser()
}

// tomlParser adapts BurntSushi/toml to koanf.Parser.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return toml.Marshal(m)
}
