package thread

import (
	"context"
	"math"
	"time"
)

// Lock is a non-reentrant mutual-exclusion primitive, backed by a
// capacity-1 channel rather than sync.Mutex so that a timed or
// non-blocking acquire can be expressed with a plain select instead of a
// spin loop. Releasing a Lock the calling goroutine does not hold is
// undefined, same as the backend sync.Mutex it stands in for.
type Lock struct {
	ch chan struct{}
}

// NewLock returns an unlocked Lock.
func NewLock() *Lock {
	l := &Lock{ch: make(chan struct{}, 1)}
	l.ch <- struct{}{}
	return l
}

func validateTimeout(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return newError(ErrInvalidState)
	}
	return nil
}

// Acquire blocks until the lock is available or ctx is done.
func (l *Lock) Acquire(ctx context.Context) error {
	select {
	case <-l.ch:
		return nil
	case <-ctx.Done():
		return newError(ErrSyncFailure)
	}
}

// AcquireTimed acquires the lock, blocking up to timeoutSeconds. A timeout
// of exactly 0 performs a non-blocking try-acquire, returning ErrBusy on
// contention instead of ErrTimedOut.
func (l *Lock) AcquireTimed(ctx context.Context, timeoutSeconds float64) error {
	if err := validateTimeout(timeoutSeconds); err != nil {
		return err
	}
	if timeoutSeconds == 0 {
		select {
		case <-l.ch:
			return nil
		default:
			return newError(ErrBusy)
		}
	}

	timer := time.NewTimer(time.Duration(timeoutSeconds * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-l.ch:
		return nil
	case <-timer.C:
		return newError(ErrTimedOut)
	case <-ctx.Done():
		return newError(ErrSyncFailure)
	}
}

// Release unlocks the lock. Releasing an already-unlocked Lock is a no-op
// rather than a panic, since the façade leaves double-release behavior to
// the backend and a channel send would otherwise block forever.
func (l *Lock) Release() {
	select {
	case l.ch <- struct{}{}:
	default:
	}
}

// Lock and Unlock satisfy sync.Locker, letting a Lock back a Monitor
// directly, and letting Acquire/Release double as a scope-guarded
// acquisition protocol via WithLock.
func (l *Lock) Lock()   { <-l.ch }
func (l *Lock) Unlock() { l.Release() }

// WithLock runs fn while l is held, releasing it on every exit path
// including a panic unwinding through fn — the scope-guarded acquisition
// protocol scripts use in place of manual acquire/release pairs.
func WithLock(l *Lock, ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}
