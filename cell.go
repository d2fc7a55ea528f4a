package parking

import (
	"math/bits"
	"sync/atomic"
	"time"
)

const (
	// FreeBits is the number of high bits of the cell the caller owns.
	// This package compares against them but changes them only when
	// [AtomicCell.StoreAndWake] stores the caller's new value.
	FreeBits = 5
	// ReservedBits is the number of low bits this package uses for its
	// own bookkeeping (the HAS_WAITERS bit, or the Parker state).
	ReservedBits = bits.UintSize - FreeBits
	// ReservedMask selects the reserved bits of the cell.
	ReservedMask = (uintptr(1) << ReservedBits) - 1
)

// Forever is the timeout sentinel meaning "wait with no timeout". A literal
// zero duration is a contract violation (see [ContractViolation]); pass
// Forever for an unbounded wait.
const Forever time.Duration = -1

// AtomicCell is a single pointer-sized atomic word, split into 5
// caller-owned free bits and a reserved region this package uses to
// implement [AtomicCell.CompareAndWait]/[AtomicCell.StoreAndWake]
// ("Waiters") or, via [Parker], the park/unpark state machine.
//
// The zero value is a valid, empty cell. AtomicCell is comparable to a
// plain [sync/atomic.Uintptr] in size and is meant to be embedded directly
// in a caller's own state, the same way a [sync.Mutex] is.
//
// Invariants:
//  1. The free bits are changed by this package only when
//     [AtomicCell.StoreAndWake] stores the caller's new value.
//  2. A single cell is used with either the Waiters API or the Parker API
//     at any one time, never both concurrently.
//  3. Every value stored into the cell by the caller must have its
//     reserved bits zero; this package alone sets and clears them.
type AtomicCell struct {
	v atomic.Uintptr
}

// Load returns the current value of the cell, including both the free
// bits and this package's reserved bits.
func (c *AtomicCell) Load() uintptr {
	return c.v.Load()
}

// backend is the per-OS wait/wake adapter contract (spec §4.1): wait
// blocks while *addr == expected, returning why it stopped; wake returns
// the number of waiters it woke (or a best-effort count, per backend).
type backend interface {
	wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason
	wake(addr *uint32) int
}

// loadWindow reads the 32-bit slice of the cell the backend's wait/wake
// primitive actually compares, per the address-word projection for this
// architecture (see bitlayout_le.go / bitlayout_be64.go).
func loadWindow(c *AtomicCell) uint32 {
	return atomic.LoadUint32(windowAddr(c))
}
