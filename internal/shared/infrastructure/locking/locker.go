package locking

import "context"

// Release frees the keys acquired by a successful Acquire call.
type Release func()

// KeyLocker serializes critical sections by named keys. Confirmations take
// locks for the room and both teachers of an assignment so that two
// concurrent confirmations touching the same resource cannot interleave
// between the conflict scan and the status write.
type KeyLocker interface {
	// Acquire blocks until all keys are held or ctx is done. Keys are
	// acquired in sorted order so overlapping key sets cannot deadlock.
	Acquire(ctx context.Context, keys ...string) (Release, error)
}
