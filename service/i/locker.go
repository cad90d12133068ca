package i

import "context"

// Locker serializes work on a key across callers.
type Locker interface {
	// Lock blocks until the key is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}
