package filesys

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// Lock is an advisory exclusive file lock held for the duration of a
// critical section (index persist, type-marker write, or the
// whole-directory lock an engine takes at open time to prevent a second
// instance from racing on the same directory). Index load and type-marker
// reads take no lock.
type Lock struct {
	flock *flock.Flock
}

// NewLock prepares an advisory lock on path. The lock file is created if
// missing; it is never removed, since removing it would race a concurrent
// locker.
func NewLock(path string) *Lock {
	return &Lock{flock: flock.New(path)}
}

// TryLock attempts to acquire the lock without blocking. It reports
// whether the lock was acquired.
func (l *Lock) TryLock() (bool, error) {
	return l.flock.TryLock()
}

// Lock blocks, polling, until the lock is acquired or ctx is done.
func (l *Lock) Lock(ctx context.Context) error {
	return l.flock.TryLockContext(ctx, 25*time.Millisecond)
}

// Unlock releases the lock. Safe to call even if the lock was never
// acquired.
func (l *Lock) Unlock() error {
	return l.flock.Unlock()
}
