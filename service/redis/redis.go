package redis

import (
	"errors"
	"time"

	"github.com/niftyx/goapi/base/ctx"
)

const (
	// Forever means the key has no associated expire
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")

	// ErrNoTTL is returned when the key exists but has no associated expire
	ErrNoTTL = errors.New("redis key has no ttl")

	// ErrGapTime is returned when no pool is available to serve the command
	ErrGapTime = errors.New("redis pool unavailable")
)

// Service wraps the redis commands used by the caching layer.
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incr(context ctx.Ctx, key string) (int64, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	TTL(context ctx.Ctx, key string) (int, error)
}
