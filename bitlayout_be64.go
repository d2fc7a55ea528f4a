//go:build arm64be || mips64 || mips64p32 || ppc64 || s390x || sparc64

package parking

import "unsafe"

// On a 64-bit big-endian target the kernel's 32-bit compare window is the
// high 4 bytes of the cell: the most significant byte is stored first in
// memory, so the first 4 bytes of the 8-byte word hold the value's upper
// half. See bitlayout_le.go for every other target.
const windowIsHighHalf = true

// windowAddr returns a pointer to the high 4 bytes of the cell, which is
// the window the kernel actually compares on this target.
func windowAddr(cell *AtomicCell) *uint32 {
	return (*uint32)(unsafe.Pointer(&cell.v))
}

// hasWaitersBit sits at the top of the reserved region, directly below the
// free bits, so it falls inside the high-32-bit window above. It would
// not be observed by the kernel's compare if placed at bit 0 the way
// bitlayout_le.go does, since bit 0 of a 64-bit big-endian word's reserved
// region lies outside the high window entirely.
const hasWaitersBit uintptr = uintptr(1) << (ReservedBits - 1)

// Parker's 2-bit state shares the same placement rationale, and may reuse
// hasWaitersBit's bits because Waiters and Parker are never used
// concurrently on the same cell.
const (
	parkerStateShift = ReservedBits - 2
	parkerStateMask  = uintptr(0b11) << parkerStateShift
)
