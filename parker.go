package parking

import "time"

// parkerState is the 3-state automaton a [Parker] drives through the 2
// bits described by parkerStateShift/parkerStateMask.
type parkerState uintptr

const (
	notParked parkerState = 0
	parked    parkerState = 1
	notified  parkerState = 2
)

// Parker implements a single-waiter park/unpark primitive over an
// [AtomicCell]. Unlike the Waiters API, Parker is meant for exactly one
// waiting goroutine at a time; a second concurrent [Parker.Park] call is a
// contract violation.
type Parker struct {
	cell *AtomicCell
}

// NewParker returns a Parker driving its 2-bit state through cell's
// reserved bits. cell must not be used with the Waiters API
// ([AtomicCell.CompareAndWait] / [AtomicCell.StoreAndWake]) concurrently.
func NewParker(cell *AtomicCell) *Parker {
	return &Parker{cell: cell}
}

func stateOf(full uintptr) parkerState {
	return parkerState((full & parkerStateMask) >> parkerStateShift)
}

func withState(full uintptr, s parkerState) uintptr {
	return (full &^ parkerStateMask) | (uintptr(s) << parkerStateShift)
}

// Park blocks the calling goroutine until another goroutine calls
// [Parker.Unpark], or, if timeout is not [Forever], until timeout
// elapses. A timeout of zero is a contract violation; use [Forever] to
// wait indefinitely.
//
// Calling Park again from a second goroutine while the first is still
// parked is a contract violation (only one waiter is supported at a
// time).
func (p *Parker) Park(timeout time.Duration) {
	if timeout == 0 {
		violatef("parking: Park: zero timeout is not allowed, use parking.Forever")
	}

	var full uintptr
	for claimed := false; !claimed; {
		full = p.cell.v.Load()
		switch stateOf(full) {
		case notParked:
			claimed = p.cell.v.CompareAndSwap(full, withState(full, parked))
		case notified:
			// An Unpark arrived before this Park call; consume it
			// and return immediately without ever blocking.
			if p.cell.v.CompareAndSwap(full, withState(full, notParked)) {
				return
			}
		case parked:
			violatef("parking: Park: this cell is already parked on by another goroutine")
			return
		default:
			debugAssert(false, "parking: Park: unrecognized parker state %d", stateOf(full))
			return
		}
	}

	addr := windowAddr(p.cell)
	// The backend compares against the parked value itself, so an Unpark
	// landing before the wait makes the backend return instead of blocking.
	expected := withState(full, parked)
	for {
		window := uint32(expected)
		if windowIsHighHalf {
			window = uint32(uint64(expected) >> 32)
		}
		reason := currentBackend.wait(addr, window, timeout)
		full := p.cell.v.Load()
		switch stateOf(full) {
		case notified:
			if p.cell.v.CompareAndSwap(full, withState(full, notParked)) {
				return
			}
			continue
		case parked:
			if timeout != Forever && reason == TimedOut {
				if p.cell.v.CompareAndSwap(full, withState(full, notParked)) {
					return
				}
				// Lost the race to a concurrent Unpark; loop and
				// pick up the resulting notified state above.
				continue
			}
			// Spurious, interrupted, or unrecognized wakeup while
			// still parked: loop and wait again.
			expected = full
		default:
			debugAssert(false, "parking: Park: unrecognized parker state %d", stateOf(full))
			return
		}
	}
}

// Unpark wakes the goroutine parked on this Parker's cell, if any. If no
// goroutine is currently parked, Unpark records the notification so the
// next [Parker.Park] call returns immediately without blocking.
//
// Unpark is idempotent: calling it more than once before the waiter
// consumes the notification has the same effect as calling it once.
func (p *Parker) Unpark() {
	for {
		full := p.cell.v.Load()
		switch stateOf(full) {
		case notified:
			return // already notified, nothing to do
		case notParked:
			if p.cell.v.CompareAndSwap(full, withState(full, notified)) {
				return
			}
		case parked:
			if p.cell.v.CompareAndSwap(full, withState(full, notified)) {
				currentBackend.wake(windowAddr(p.cell))
				return
			}
		default:
			debugAssert(false, "parking: Unpark: unrecognized parker state %d", stateOf(full))
			return
		}
	}
}
