//go:build dragonfly

package parking

import (
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DragonFly BSD's umtx_sleep(2)/umtx_wakeup(2) compare a full-width word
// but only the low bytes actually participate in the wait per
// original_source/src/futex/dragonfly.rs's UNCOMPARED_BITS accounting;
// this backend uses the same 32-bit window every other target does and
// relies on the kernel's "uncompared bits" policy to make that safe.
const (
	sysUmtxSleep   = unix.SYS_UMTX_SLEEP
	sysUmtxWakeup  = unix.SYS_UMTX_WAKEUP
	dragonflyForever int32 = 0
)

type dragonflyBackend struct{}

var currentBackend backend = dragonflyBackend{}

func (dragonflyBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	// DragonFly's umtx_sleep requires at least one atomic write to the
	// word on every call, including spurious-wake retries of the same
	// wait; a thread that only ever reads it can desync from the
	// kernel's internal wait-queue bookkeeping for that address. The
	// caller loop (waiters.go/parker.go) re-enters this function on
	// every spurious wakeup, so a no-op RMW here covers every iteration.
	atomic.AddUint32(addr, 0)

	timeoutUs := dragonflyForever
	if timeout != Forever {
		us := timeout.Microseconds()
		switch {
		case us <= 0:
			timeoutUs = 1
		case us > int64(^uint32(0)>>1):
			timeoutUs = int32(^uint32(0) >> 1)
		default:
			timeoutUs = int32(us)
		}
	}

	_, _, errno := unix.Syscall(
		sysUmtxSleep,
		uintptr(unsafe.Pointer(addr)),
		uintptr(int32(expected)),
		uintptr(timeoutUs),
	)
	switch errno {
	case 0:
		return Unknown
	case unix.EBUSY:
		return NoMatch
	case unix.EINTR:
		return Interrupt
	case unix.EWOULDBLOCK:
		if timeout != Forever {
			return TimedOut
		}
		return Unknown
	default:
		logf(LevelWarn, "umtx_sleep: unrecognized errno %v", errno)
		return Unknown
	}
}

func (dragonflyBackend) wake(addr *uint32) int {
	n, _, errno := unix.Syscall(
		sysUmtxWakeup,
		uintptr(unsafe.Pointer(addr)),
		uintptr(int32(^uint32(0)>>1)),
		0,
	)
	if errno != 0 {
		logf(LevelWarn, "umtx_wakeup: unrecognized errno %v", errno)
		return 0
	}
	return int(n)
}
