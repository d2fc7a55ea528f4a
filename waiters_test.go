package parking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOneCellBroadcast mirrors spec §8 scenario 1: thirty-two goroutines
// wait on a shared cell; a single StoreAndWake wakes all of them.
func TestOneCellBroadcast(t *testing.T) {
	const n = 32
	var cell AtomicCell

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			cell.CompareAndWait(0)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	const wakeValue = uintptr(0x20) << ReservedBits
	cell.StoreAndWake(wakeValue)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("not all waiters returned within 200ms of StoreAndWake")
	}

	assert.Equal(t, wakeValue, cell.Load())
}

// TestRaceToInitialize mirrors spec §8 scenario 2, at a scale that still
// exercises the CAS race without the full 1,000,000-cell run.
func TestRaceToInitialize(t *testing.T) {
	const (
		numCells   = 10_000
		numWorkers = 32

		stateIncomplete uintptr = 0
		stateRunning    uintptr = 1 << ReservedBits
		stateComplete   uintptr = 2 << ReservedBits
	)

	cells := make([]AtomicCell, numCells)
	payloads := make([]uintptr, numCells)

	accumulators := make([]uintptr, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			var acc uintptr
			for i := 0; i < numCells; i++ {
				c := &cells[i]
				switch c.Load() &^ ReservedMask {
				case stateIncomplete:
					if c.v.CompareAndSwap(stateIncomplete, stateRunning) {
						payloads[i] = uintptr(i + 1)
						c.StoreAndWake(stateComplete)
					} else {
						c.CompareAndWait(stateRunning)
					}
				case stateRunning:
					c.CompareAndWait(stateRunning)
				}
				acc += payloads[i]
			}
			accumulators[w] = acc
		}(w)
	}
	wg.Wait()

	for w := 1; w < numWorkers; w++ {
		require.Equal(t, accumulators[0], accumulators[w], "worker %d accumulator diverged", w)
	}
}

// TestCompareAndWaitSpuriousWakeResilience mirrors spec §8 scenario 6: a
// backend that always returns Unknown without the cell changing must not
// cause CompareAndWait to exit.
func TestCompareAndWaitSpuriousWakeResilience(t *testing.T) {
	fake := &fakeSpuriousBackend{waited: make(chan struct{}, 1)}
	withBackend(t, fake)

	var cell AtomicCell
	done := make(chan struct{})
	go func() {
		cell.CompareAndWait(0)
		close(done)
	}()

	select {
	case <-fake.waited:
	case <-time.After(time.Second):
		t.Fatal("CompareAndWait never reached the backend")
	}

	select {
	case <-done:
		t.Fatal("CompareAndWait returned despite only spurious wakeups")
	case <-time.After(100 * time.Millisecond):
	}

	cell.StoreAndWake(uintptr(1) << ReservedBits)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CompareAndWait did not return after a genuine StoreAndWake")
	}
}
