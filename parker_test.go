package parking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnparkBeforePark(t *testing.T) {
	var cell AtomicCell
	p := NewParker(&cell)

	p.Unpark() // arrives before anyone parks

	done := make(chan struct{})
	go func() {
		p.Park(Forever) // must return immediately, consuming the notification
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Park did not consume a pending Unpark")
	}
}

func TestParkTimeout(t *testing.T) {
	var cell AtomicCell
	p := NewParker(&cell)

	start := time.Now()
	done := make(chan struct{})
	go func() {
		p.Park(10 * time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Park(10ms) did not return within 200ms")
	}
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, notParked, stateOf(cell.Load()))
}

func TestParkZeroTimeoutPanics(t *testing.T) {
	var cell AtomicCell
	p := NewParker(&cell)
	require.Panics(t, func() {
		p.Park(0)
	})
}

func TestDoubleParkPanics(t *testing.T) {
	var cell AtomicCell
	// Force the cell directly into the parked state, as a second
	// concurrent Park call would observe it, without racing a real
	// goroutine for determinism.
	cell.v.Store(withState(0, parked))

	p := NewParker(&cell)
	require.Panics(t, func() {
		p.Park(Forever)
	})
}

// TestParkUnparkPingPong mirrors spec §8 scenario 3: repeated park/unpark
// round trips between two goroutines.
func TestParkUnparkPingPong(t *testing.T) {
	const rounds = 20_000

	var cellA, cellB AtomicCell
	pa := NewParker(&cellA)
	pb := NewParker(&cellB)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			pa.Park(Forever)
			pb.Unpark()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			pa.Unpark()
			pb.Park(Forever)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("ping-pong did not complete")
	}
}

func TestParkSpuriousWakeResilience(t *testing.T) {
	fake := &fakeSpuriousBackend{waited: make(chan struct{}, 1)}
	withBackend(t, fake)

	var cell AtomicCell
	p := NewParker(&cell)

	done := make(chan struct{})
	go func() {
		p.Park(Forever)
		close(done)
	}()

	select {
	case <-fake.waited:
	case <-time.After(time.Second):
		t.Fatal("Park never reached the backend")
	}

	select {
	case <-done:
		t.Fatal("Park returned despite only spurious wakeups")
	case <-time.After(100 * time.Millisecond):
	}

	p.Unpark()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Park did not return after a genuine Unpark")
	}
}
