package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// default prefix for redis lock keys
	defaultPrefix = "minesweeper"

	// default time a lock survives if its holder dies
	defaultExpiry = 5 * time.Second

	// lock key string format
	lockKeyFmt = "%s:session:%s:lock"
)

// RedisLocker serializes work on a key across processes sharing a Redis server.
// Implements i.Locker.
type RedisLocker struct {
	locker *redsync.Redsync
	prefix string
	expiry time.Duration
	logger *logrus.Entry
}

// Options configures a RedisLocker. Zero values fall back to defaults.
type Options struct {
	Prefix string
	Expiry time.Duration
	Logger *logrus.Entry
}

// NewRedisLocker creates a RedisLocker backed by client.
func NewRedisLocker(client *redis.Client, opts Options) i.Locker {
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.Expiry <= 0 {
		opts.Expiry = defaultExpiry
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		prefix: opts.Prefix,
		expiry: opts.Expiry,
		logger: opts.Logger,
	}
}

// Lock blocks until key is held or ctx is done.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := r.locker.NewMutex(fmt.Sprintf(lockKeyFmt, r.prefix, key), redsync.WithExpiry(r.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking %s: %w", key, err)
	}

	return func() {
		if _, err := mutex.Unlock(); err != nil {
			r.logger.WithField("key", key).Warnf("releasing lock: %v", err)
		}
	}, nil
}
