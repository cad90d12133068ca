package lock

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-sweeper/service/i"
)

// MemoryLocker serializes work on a key within a single process.
// Implements i.Locker.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// slot is a one-token semaphore shared by everyone holding or waiting for a key.
type slot struct {
	token chan struct{}
	refs  int
}

// NewMemoryLocker creates an empty MemoryLocker.
func NewMemoryLocker() i.Locker {
	return &MemoryLocker{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done.
func (m *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{token: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	m.mu.Unlock()

	select {
	case s.token <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.token
				m.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		m.release(key, s)
		return nil, ctx.Err()
	}
}

// release drops one reference and forgets the slot once nobody uses it.
func (m *MemoryLocker) release(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}
