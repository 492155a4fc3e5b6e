package thread_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rill-lang/rill/thread"
)

func TestSemaphoreRejectsNegativeCount(t *testing.T) {
	_, err := thread.NewSemaphore(-1)
	require.Error(t, err)
}

func TestSemaphoreAcquireReleaseRoundtrips(t *testing.T) {
	s, err := thread.NewSemaphore(2)
	require.NoError(t, err)

	require.NoError(t, s.AcquireTimed(0, 2))
	assert.Equal(t, 0, s.Count())

	err = s.AcquireTimed(0, 1)
	require.Error(t, err)
	var ferr *thread.Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, thread.ErrBusy, ferr.Kind)

	s.Release(1)
	assert.Equal(t, 1, s.Count())
}

func TestSemaphoreAcquireBlocksUntilEnoughReleased(t *testing.T) {
	s, err := thread.NewSemaphore(0)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- s.AcquireTimed(1.0, 3)
	}()

	time.Sleep(10 * time.Millisecond)
	s.Release(2)
	time.Sleep(10 * time.Millisecond)
	s.Release(1)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("acquire never satisfied")
	}
}

func TestSemaphoreAcquireTimesOut(t *testing.T) {
	s, err := thread.NewSemaphore(0)
	require.NoError(t, err)

	err = s.AcquireTimed(0.05, 1)
	require.Error(t, err)
	var ferr *thread.Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, thread.ErrTimedOut, ferr.Kind)
}
