//go:build openbsd

package parking

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// OpenBSD's futex(2) is close to Linux's but takes only 5 arguments (no
// uaddr2/val3), per original_source/src/futex/openbsd.rs.
const (
	sysFutex = unix.SYS_FUTEX

	openbsdFutexWait = 0
	openbsdFutexWake = 1
)

type openbsdBackend struct{}

var currentBackend backend = openbsdBackend{}

func (openbsdBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	var ts *unix.Timespec
	if timeout != Forever {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	_, _, errno := unix.Syscall6(
		sysFutex,
		uintptr(unsafe.Pointer(addr)),
		openbsdFutexWait,
		uintptr(expected),
		uintptr(unsafe.Pointer(ts)),
		0, 0,
	)
	switch errno {
	case 0:
		return Unknown
	case unix.EAGAIN:
		return NoMatch
	case unix.EINTR, unix.ECANCELED:
		return Interrupt
	case unix.ETIMEDOUT:
		if ts != nil {
			return TimedOut
		}
		logf(LevelWarn, "futex wait: ETIMEDOUT with no timeout set")
		return Unknown
	default:
		logf(LevelWarn, "futex wait: unrecognized errno %v", errno)
		return Unknown
	}
}

func (openbsdBackend) wake(addr *uint32) int {
	n, _, errno := unix.Syscall6(
		sysFutex,
		uintptr(unsafe.Pointer(addr)),
		openbsdFutexWake,
		uintptr(^uint32(0)>>1),
		0, 0, 0,
	)
	if errno != 0 {
		logf(LevelWarn, "futex wake: unrecognized errno %v", errno)
		return 0
	}
	return int(n)
}
