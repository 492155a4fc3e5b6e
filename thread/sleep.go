package thread

import (
	"runtime"
	"time"
)

// Sleep pauses the calling goroutine for the given number of seconds,
// fractional values permitted. Negative, NaN, or infinite durations are
// rejected the same way a timed acquire rejects them.
func Sleep(seconds float64) error {
	if err := validateTimeout(seconds); err != nil {
		return err
	}
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return nil
}

// Gosched yields the processor, letting other goroutines run.
func Gosched() {
	runtime.Gosched()
}

// Threaded reports whether real concurrency is available. Go's runtime
// always schedules goroutines, so this is always true; it is kept as a
// function, not a constant, so the API still has a place for a backend
// that could in principle report otherwise.
func Threaded() bool {
	return true
}

// Threader names the concurrency backend in use.
func Threader() string {
	return "goroutine"
}
