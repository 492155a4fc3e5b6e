package thread

import (
	"sync"
	"time"
)

// countdown tracks a timeout across a sequence of retried waits, the way a
// spuriously-woken condition wait must re-check its predicate and keep
// waiting on whatever time remains. Go's time.Now carries a monotonic
// reading whenever the system clock provides one, so Remaining never
// observes a backward jump from wall-clock adjustments.
type countdown struct {
	deadline time.Time
	forever  bool
}

// newCountdown starts a countdown for the given number of seconds,
// fractional values permitted. A negative timeout is rejected by the
// caller before this is ever constructed; a timeout of 0 always reports
// Remaining() == 0, making the first check behave as a try-acquire.
func newCountdown(seconds float64) countdown {
	return countdown{deadline: time.Now().Add(time.Duration(seconds * float64(time.Second)))}
}

// foreverCountdown constructs a countdown that never expires, for blocking
// (untimed) acquires expressed in terms of the same retry loop.
func foreverCountdown() countdown {
	return countdown{forever: true}
}

// Remaining reports the time left before the deadline, floored at zero.
func (c countdown) Remaining() time.Duration {
	if c.forever {
		return time.Duration(1<<63 - 1)
	}
	d := time.Until(c.deadline)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the deadline has passed.
func (c countdown) Expired() bool {
	return !c.forever && !time.Now().Before(c.deadline)
}

// condWaitTimeout blocks on cond.Wait, but wakes on its own after timeout
// even if nothing ever signals it. sync.Cond has no native deadline, so a
// timer goroutine broadcasts once timeout elapses; the caller re-checks
// its predicate and remaining time afterward, exactly as a spuriously
// woken wait would.
func condWaitTimeout(cond *sync.Cond, timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	timer := time.AfterFunc(timeout, func() {
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()
	cond.Wait()
}
