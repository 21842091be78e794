package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the journal writer lock
// for longer than the configured timeout.
var ErrLocked = errors.New("journal is locked by another process")

const lockRetryDelay = 50 * time.Millisecond

// withWriteLock runs fn while holding the flock beside the database file.
func (s *Store) withWriteLock(ctx context.Context, fn func() error) error {
	lock := flock.New(s.path + ".lock")

	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLocked, lock.Path())
		}
		return fmt.Errorf("acquire journal lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
