package thread

import (
	"context"
	"sync"
)

// RLock is a recursive mutex: the goroutine that already holds it may
// acquire it again, and must release the same number of times before it
// becomes available to others. Reentrancy is recognized via the
// OwnerToken attached to ctx (see WithOwner), since a goroutine has no
// native identity to compare against.
type RLock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner *OwnerToken
	count int
}

// NewRLock returns an unlocked RLock.
func NewRLock() *RLock {
	rl := &RLock{}
	rl.cond = sync.NewCond(&rl.mu)
	return rl
}

// AcquireTimed acquires the lock, reentering if ctx carries the current
// holder's token. A timeout of 0 performs a try-acquire.
func (rl *RLock) AcquireTimed(ctx context.Context, timeoutSeconds float64) error {
	if err := validateTimeout(timeoutSeconds); err != nil {
		return err
	}
	tok := ownerFromContext(ctx)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.owner != nil && tok != nil && rl.owner == tok {
		rl.count++
		return nil
	}

	isTry := timeoutSeconds == 0
	cd := newCountdown(timeoutSeconds)
	for rl.count > 0 {
		if isTry {
			return newError(ErrBusy)
		}
		if cd.Expired() {
			return newError(ErrTimedOut)
		}
		condWaitTimeout(rl.cond, cd.Remaining())
	}
	rl.owner = tok
	rl.count = 1
	return nil
}

// Acquire blocks indefinitely; equivalent to AcquireTimed with an infinite
// timeout, expressed directly rather than via a sentinel duration.
func (rl *RLock) Acquire(ctx context.Context) error {
	tok := ownerFromContext(ctx)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.owner != nil && tok != nil && rl.owner == tok {
		rl.count++
		return nil
	}
	for rl.count > 0 {
		rl.cond.Wait()
	}
	rl.owner = tok
	rl.count = 1
	return nil
}

// Release gives up one level of reentrancy, and the lock itself once the
// count reaches zero.
func (rl *RLock) Release() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.count == 0 {
		return
	}
	rl.count--
	if rl.count == 0 {
		rl.owner = nil
		rl.cond.Signal()
	}
}

// Lock and Unlock satisfy sync.Locker using an anonymous, non-reentrant
// acquisition, letting an RLock back a Monitor the same way a Lock does.
func (rl *RLock) Lock() {
	_ = rl.Acquire(context.Background())
}

func (rl *RLock) Unlock() {
	rl.Release()
}
