//go:build linux || android

package parking

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux and Android share the futex(2) syscall; this file is grounded on
// the raw FUTEX_WAIT/FUTEX_WAKE syscall pattern used throughout the
// example corpus (e.g. the FutexWait/FutexWake helpers built on
// syscall.Syscall6(syscall.SYS_FUTEX, ...)), adapted to use the typed
// constants and Timespec conversion golang.org/x/sys/unix already
// provides instead of hand-rolled syscall numbers.
const (
	futexWaitPrivate = unix.FUTEX_WAIT | unix.FUTEX_PRIVATE_FLAG
	futexWakePrivate = unix.FUTEX_WAKE | unix.FUTEX_PRIVATE_FLAG
)

type linuxBackend struct{}

var currentBackend backend = linuxBackend{}

func (linuxBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	var ts *unix.Timespec
	if timeout != Forever {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitPrivate),
		uintptr(expected),
		uintptr(unsafe.Pointer(ts)),
		0, 0,
	)
	switch errno {
	case 0:
		return Unknown
	case unix.EAGAIN:
		return NoMatch
	case unix.EINTR:
		return Interrupt
	case unix.ETIMEDOUT:
		if ts != nil {
			return TimedOut
		}
		logf(LevelWarn, "futex_wait: ETIMEDOUT with no timeout set")
		return Unknown
	default:
		logf(LevelWarn, "futex_wait: unrecognized errno %v", errno)
		return Unknown
	}
}

func (linuxBackend) wake(addr *uint32) int {
	n, _, errno := unix.Syscall(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakePrivate),
		uintptr(^uint32(0)>>1), // INT32_MAX, wake every waiter
	)
	if errno != 0 {
		logf(LevelWarn, "futex_wake: unrecognized errno %v", errno)
		return 0
	}
	return int(n)
}
