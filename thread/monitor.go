package thread

import (
	"context"
	"sync"
)

// Monitor pairs a mutex with a condition variable. A Monitor constructed
// via NewMonitor owns a private mutex; one constructed via
// NewMonitorWithLocker wraps an existing Lock or RLock instead, and never
// closes or otherwise disposes of it.
type Monitor struct {
	locker sync.Locker
	cond   *sync.Cond
}

// NewMonitor returns a Monitor that owns its own mutex. The mutex is a
// Lock rather than a bare sync.Mutex so AcquireTimed gets try-acquire and
// timed-acquire semantics for free through the *Lock branch below.
func NewMonitor() *Monitor {
	l := NewLock()
	return &Monitor{locker: l, cond: sync.NewCond(l)}
}

// NewMonitorWithLocker returns a Monitor bound to an externally owned
// Lock or RLock; freeing the Monitor never releases or frees l.
func NewMonitorWithLocker(l sync.Locker) *Monitor {
	return &Monitor{locker: l, cond: sync.NewCond(l)}
}

// AcquireTimed acquires the monitor's mutex. When the wrapped locker is a
// Lock or RLock (true of every Monitor returned by NewMonitor, and of any
// bound via NewMonitorWithLocker with one of this package's own lock
// types) the timeout and try-acquire semantics are honored directly; an
// arbitrary externally supplied sync.Locker has no try/timed acquire of
// its own, so acquisition against one always succeeds by blocking.
func (m *Monitor) AcquireTimed(ctx context.Context, timeoutSeconds float64) error {
	switch l := m.locker.(type) {
	case *Lock:
		return l.AcquireTimed(ctx, timeoutSeconds)
	case *RLock:
		return l.AcquireTimed(ctx, timeoutSeconds)
	default:
		if err := validateTimeout(timeoutSeconds); err != nil {
			return err
		}
		m.locker.Lock()
		return nil
	}
}

// Release releases the monitor's mutex.
func (m *Monitor) Release() {
	m.locker.Unlock()
}

// Wait atomically releases the held mutex and blocks until Notify or
// NotifyAll wakes it, reacquiring the mutex before returning. The caller
// must hold the mutex (via AcquireTimed) before calling Wait.
func (m *Monitor) Wait() {
	m.cond.Wait()
}

// WaitTimed is Wait bounded by timeoutSeconds; it reports ErrTimedOut if
// the deadline passes before anything wakes it. A woken-but-still-false
// predicate is the caller's concern: WaitTimed only reports whether it
// returned due to expiry, the same distinction notify and timeout make at
// the façade boundary.
func (m *Monitor) WaitTimed(timeoutSeconds float64) error {
	if err := validateTimeout(timeoutSeconds); err != nil {
		return err
	}
	cd := newCountdown(timeoutSeconds)
	condWaitTimeout(m.cond, cd.Remaining())
	if cd.Expired() {
		return newError(ErrTimedOut)
	}
	return nil
}

// Notify wakes up to n waiters. n <= 0 defaults to 1.
func (m *Monitor) Notify(n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		m.cond.Signal()
	}
}

// NotifyAll wakes every waiter.
func (m *Monitor) NotifyAll() {
	m.cond.Broadcast()
}
