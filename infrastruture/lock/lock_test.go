package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseLocker checks mutual exclusion and cancellation for any Locker.
func exerciseLocker(t *testing.T, l i.Locker, key string) {
	t.Run("Mutual exclusion", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			holders int
			maxSeen int
		)

		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(context.Background(), key)
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				holders++
				maxSeen = max(maxSeen, holders)
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				holders--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
	})

	t.Run("Cancelled wait", func(t *testing.T) {
		unlock, err := l.Lock(context.Background(), key)
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = l.Lock(ctx, key)
		assert.Error(t, err)
	})

	t.Run("Independent keys", func(t *testing.T) {
		unlock, err := l.Lock(context.Background(), key)
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		other, err := l.Lock(ctx, key+"-other")
		require.NoError(t, err)
		other()
	})
}

func TestMemoryLocker(t *testing.T) {
	l := NewMemoryLocker()
	exerciseLocker(t, l, "session")

	t.Run("Slots are released", func(t *testing.T) {
		unlock, err := l.Lock(context.Background(), "temp")
		require.NoError(t, err)
		unlock()
		unlock()

		m := l.(*MemoryLocker)
		m.mu.Lock()
		defer m.mu.Unlock()
		assert.Empty(t, m.slots)
	})
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	exerciseLocker(t, NewRedisLocker(client, Options{Prefix: "minesweeper-test"}), "session")
}
