package thread

// Semaphore is a non-negative counter protected by a Monitor. The
// standard library has no native semaphore type, so this builds one on
// top of Monitor the way a backend lacking a native primitive must.
type Semaphore struct {
	mon   *Monitor
	count int
}

// NewSemaphore constructs a Semaphore with the given initial count, which
// must be non-negative.
func NewSemaphore(n int) (*Semaphore, error) {
	if n < 0 {
		return nil, newError(ErrInvalidState)
	}
	return &Semaphore{mon: NewMonitor(), count: n}, nil
}

// AcquireTimed blocks until the counter is at least n, then decrements it
// by n. n <= 0 defaults to 1. A timeout of 0 performs a try-acquire,
// returning ErrBusy instead of blocking or timing out.
func (s *Semaphore) AcquireTimed(timeoutSeconds float64, n int) error {
	if n <= 0 {
		n = 1
	}
	if err := validateTimeout(timeoutSeconds); err != nil {
		return err
	}

	s.mon.locker.Lock()
	defer s.mon.locker.Unlock()

	isTry := timeoutSeconds == 0
	cd := newCountdown(timeoutSeconds)
	for s.count < n {
		if isTry {
			return newError(ErrBusy)
		}
		if cd.Expired() {
			return newError(ErrTimedOut)
		}
		condWaitTimeout(s.mon.cond, cd.Remaining())
	}
	s.count -= n
	return nil
}

// Release increments the counter by n (default 1) and wakes every waiter,
// since a single release may satisfy several pending acquires of
// differing size and only a broadcast lets each recheck its own n.
func (s *Semaphore) Release(n int) {
	if n <= 0 {
		n = 1
	}
	s.mon.locker.Lock()
	s.count += n
	s.mon.locker.Unlock()
	s.mon.cond.Broadcast()
}

// Count reports the current counter value, for diagnostics and tests.
func (s *Semaphore) Count() int {
	s.mon.locker.Lock()
	defer s.mon.locker.Unlock()
	return s.count
}
