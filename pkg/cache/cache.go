// Package cache memoizes pipeline outputs behind a small key/value interface.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [MemoryCache]: in-process LRU, for the API server and tests
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache], [MongoCache]: shared caches for multi-instance servers
//
// Keys are built by a [Keyer] from content hashes, so a cached value can be
// reused by any process that sees the same input and options.
package cache

import (
	"context"
	"time"

	"github.com/paupedrejon/conceptmap/pkg/errors"
)

// Cache stores opaque byte values by key. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default TTLs per value kind.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Backend names accepted by [New].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name in display order.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Dir        string // file backend
	MemorySize int    // memory backend, entries
	Redis      RedisConfig
	Mongo      MongoConfig
}

// New opens the backend named by opts.Backend. An empty name means none.
func New(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		c, err = NewMemoryCache(opts.MemorySize)
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
		c, err = NewFileCache(opts.Dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		c, err = NewMongoCache(ctx, opts.Mongo)
	default:
		return nil, errors.ValidateChoice(errors.ErrCodeInvalidConfig, "cache.backend", opts.Backend, Backends...)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Clearer is implemented by backends that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
