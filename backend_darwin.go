//go:build darwin || ios

package parking

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Darwin and iOS have no public futex; this binds the same undocumented
// __ulock_wait/__ulock_wake syscalls the Rust original uses
// (original_source/src/futex/darwin.rs), grounded in idiom on the
// example corpus's raw-syscall style (golang.org/x/sys/unix.Syscall
// instead of hand-written syscall numbers for the pieces x/sys already
// names).
const (
	sysUlockWait = 515
	sysUlockWake = 516

	ulCompareAndWait = 1
	ulfWakeAll       = 0x100
)

type darwinBackend struct{}

var currentBackend backend = darwinBackend{}

func (darwinBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	var timeoutUs uint32 // 0 means wait indefinitely
	if timeout != Forever {
		us := timeout.Microseconds()
		if us <= 0 {
			us = 1
		}
		if us > int64(^uint32(0)) {
			timeoutUs = ^uint32(0)
		} else {
			timeoutUs = uint32(us)
		}
	}

	r, _, errno := unix.Syscall6(
		sysUlockWait,
		ulCompareAndWait,
		uintptr(unsafe.Pointer(addr)),
		uintptr(expected),
		uintptr(timeoutUs),
		0, 0,
	)
	if int(r) >= 0 {
		return Unknown
	}
	switch errno {
	case unix.EINTR:
		return Interrupt
	case unix.ETIMEDOUT:
		if timeout != Forever {
			return TimedOut
		}
		logf(LevelWarn, "ulock_wait: ETIMEDOUT with no timeout set")
		return Unknown
	default:
		logf(LevelWarn, "ulock_wait: unrecognized errno %v", errno)
		return Unknown
	}
}

func (darwinBackend) wake(addr *uint32) int {
	_, _, errno := unix.Syscall(
		sysUlockWake,
		ulCompareAndWait|ulfWakeAll,
		uintptr(unsafe.Pointer(addr)),
		0,
	)
	if errno != 0 && errno != unix.ENOENT {
		// ENOENT means no waiters were present; every other errno is
		// unexpected for a wake call.
		logf(LevelWarn, "ulock_wake: unrecognized errno %v", errno)
	}
	return 0 // __ulock_wake does not report a woken count
}
