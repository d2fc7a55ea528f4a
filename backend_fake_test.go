package parking

import "time"

// fakeSpuriousBackend simulates a backend that keeps returning Unknown
// without the cell's value ever actually changing, the way spec §8's
// "simulated adapter" scenario does: it exercises the requirement that
// CompareAndWait/Park must not exit on a spurious wakeup alone.
type fakeSpuriousBackend struct {
	waited chan struct{}
}

func (f *fakeSpuriousBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	select {
	case f.waited <- struct{}{}:
	default:
	}
	// A real OS wait blocks in the kernel; sleep briefly so this stand-in
	// doesn't busy-spin while still returning promptly once the test is
	// ready to move on.
	time.Sleep(5 * time.Millisecond)
	return Unknown
}

func (f *fakeSpuriousBackend) wake(addr *uint32) int { return 0 }

// withBackend temporarily swaps the package-level backend singleton for
// the duration of a test, restoring the original on cleanup.
func withBackend(t interface{ Cleanup(func()) }, b backend) {
	old := currentBackend
	currentBackend = b
	t.Cleanup(func() { currentBackend = old })
}
