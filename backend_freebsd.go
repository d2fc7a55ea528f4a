//go:build freebsd

package parking

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FreeBSD exposes no futex(2); _umtx_op(2) (original_source/src/futex/freebsd.rs)
// is the process-private equivalent, operating on the same 32-bit compare
// window every other backend in this package targets.
const (
	sysUmtxOp = 454

	umtxOpWaitUintPrivate = 15
	umtxOpWakePrivate     = 16
)

type freebsdBackend struct{}

var currentBackend backend = freebsdBackend{}

func (freebsdBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	var ts *unix.Timespec
	if timeout != Forever {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	_, _, errno := unix.Syscall6(
		sysUmtxOp,
		uintptr(unsafe.Pointer(addr)),
		umtxOpWaitUintPrivate,
		uintptr(expected),
		unsafe.Sizeof(unix.Timespec{}),
		uintptr(unsafe.Pointer(ts)),
		0,
	)
	switch errno {
	case 0:
		return Unknown
	case unix.EINTR:
		return Interrupt
	case unix.ETIMEDOUT:
		if ts != nil {
			return TimedOut
		}
		logf(LevelWarn, "_umtx_op wait: ETIMEDOUT with no timeout set")
		return Unknown
	default:
		logf(LevelWarn, "_umtx_op wait: unrecognized errno %v", errno)
		return Unknown
	}
}

func (freebsdBackend) wake(addr *uint32) int {
	n, _, errno := unix.Syscall6(
		sysUmtxOp,
		uintptr(unsafe.Pointer(addr)),
		umtxOpWakePrivate,
		uintptr(^uint32(0)>>1),
		0, 0, 0,
	)
	if errno != 0 {
		logf(LevelWarn, "_umtx_op wake: unrecognized errno %v", errno)
		return 0
	}
	return int(n)
}
