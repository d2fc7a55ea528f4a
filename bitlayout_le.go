//go:build !arm64be && !mips64 && !mips64p32 && !ppc64 && !s390x && !sparc64

package parking

import "unsafe"

// On every little-endian target, and on every 32-bit target regardless of
// endianness, the kernel's 32-bit compare window is the low 4 bytes of the
// cell — which, on a 32-bit target, is the whole cell. See bitlayout_be64.go
// for the big-endian 64-bit counterpart.
const windowIsHighHalf = false

// windowAddr returns the address the OS wait/wake primitive must be given:
// a pointer to the 32-bit window the kernel actually compares, which on
// this target is simply the cell's own address.
func windowAddr(cell *AtomicCell) *uint32 {
	return (*uint32)(unsafe.Pointer(&cell.v))
}

// hasWaitersBit is the reserved bit [AtomicCell.CompareAndWait] sets to
// record that a waiter is present. Placed at the bottom of the reserved
// region so it always falls inside the low-32-bit window above.
const hasWaitersBit uintptr = 1

// Parker's 2-bit state lives at the bottom of the reserved region too, for
// the same reason, and may reuse hasWaitersBit's position because Waiters
// and Parker are never used concurrently on the same cell.
const (
	parkerStateShift = 0
	parkerStateMask  = uintptr(0b11) << parkerStateShift
)
