package parking

// CompareAndWait blocks the calling goroutine while the free bits of the
// cell's value equal expected, after first marking the cell as having a
// waiter. It
// has no timeout: it returns only when the value actually changes (via
// [AtomicCell.StoreAndWake]), looping internally through any number of
// spurious, interrupted, or unrecognized wakeups.
//
// Any number of goroutines may call CompareAndWait on the same cell
// concurrently; a single [AtomicCell.StoreAndWake] call wakes all of
// them.
//
// expected must have its reserved bits zero; a non-zero reserved region
// is a contract violation (invariant 3).
func (c *AtomicCell) CompareAndWait(expected uintptr) {
	if expected&ReservedMask != 0 {
		violatef("parking: CompareAndWait: expected value has non-zero reserved bits")
	}

	for {
		cur := c.v.Load()
		if cur&^ReservedMask != expected {
			return
		}
		// Publish HAS_WAITERS before blocking, so a concurrent
		// StoreAndWake that observes it is guaranteed to call wake.
		withWaiters := cur | hasWaitersBit
		if cur == withWaiters {
			break // already marked
		}
		if c.v.CompareAndSwap(cur, withWaiters) {
			break
		}
	}

	addr := windowAddr(c)
	for {
		cur := c.v.Load()
		if cur&^ReservedMask != expected {
			return
		}
		// No timeout: every return reason other than a genuine value
		// change is spurious from this API's point of view, and the
		// loop simply re-checks and re-waits. The compare value is taken
		// from cur, so a store landing after the check above makes the
		// backend return instead of blocking.
		window := uint32(cur)
		if windowIsHighHalf {
			window = uint32(uint64(cur) >> 32)
		}
		currentBackend.wait(addr, window, Forever)
	}
}

// StoreAndWake stores new into the cell (preserving no reserved state —
// new must itself have zero reserved bits) and wakes every waiter parked
// via [AtomicCell.CompareAndWait] on this cell.
//
// new must have its reserved bits zero; a non-zero reserved region is a
// contract violation (invariant 3).
func (c *AtomicCell) StoreAndWake(new uintptr) {
	if new&ReservedMask != 0 {
		violatef("parking: StoreAndWake: new value has non-zero reserved bits")
	}
	old := c.v.Swap(new)
	if old&hasWaitersBit != 0 {
		currentBackend.wake(windowAddr(c))
	}
}
