package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key.
//
// A miss is reported as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend   string
	Dir       string // file backend
	RedisAddr string // redis backend
	RedisDB   int
	Prefix    string // redis key prefix
}

// Open creates the cache named by cfg.Backend. An empty backend means none.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Prefix: cfg.Prefix})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, ErrUnknownBackend
	}
}
