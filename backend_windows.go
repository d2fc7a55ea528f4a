//go:build windows

package parking

import (
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsBackend struct{}

var currentBackend backend = windowsBackend{}

const ntStatusTimeout = 0x00000102

func (windowsBackend) wait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	switch selectedBackend() {
	case backendWaitOnAddress:
		return waitOnAddressWait(addr, expected, timeout)
	default:
		return keyedEventWait(addr, timeout)
	}
}

func (windowsBackend) wake(addr *uint32) int {
	switch selectedBackend() {
	case backendWaitOnAddress:
		return waitOnAddressWake(addr)
	default:
		return keyedEventWake(addr)
	}
}

// --- WaitOnAddress / WakeByAddressAll (Windows 8+) ---

const infiniteMillis = 0xFFFFFFFF

func waitOnAddressWait(addr *uint32, expected uint32, timeout time.Duration) WakeupReason {
	millis := uint32(infiniteMillis)
	if timeout != Forever {
		ms := timeout.Milliseconds()
		if ms <= 0 {
			ms = 1
		}
		if ms > int64(infiniteMillis-1) {
			millis = infiniteMillis - 1
		} else {
			millis = uint32(ms)
		}
	}

	r, _, callErr := procWaitOnAddress.Call(
		uintptr(unsafe.Pointer(addr)),
		uintptr(unsafe.Pointer(&expected)),
		unsafe.Sizeof(expected),
		uintptr(millis),
	)
	if r != 0 {
		return Unknown
	}
	if callErr == windows.ERROR_TIMEOUT {
		if timeout != Forever {
			return TimedOut
		}
		logf(LevelWarn, "WaitOnAddress: ERROR_TIMEOUT with no timeout set")
		return Unknown
	}
	logf(LevelWarn, "WaitOnAddress: unrecognized error %v", callErr)
	return Unknown
}

func waitOnAddressWake(addr *uint32) int {
	procWakeByAddressAll.Call(uintptr(unsafe.Pointer(addr)))
	return 0 // WakeByAddressAll does not report a woken count
}

// --- NT Keyed Events (Windows XP+) ---
//
// NtWaitForKeyedEvent/NtReleaseKeyedEvent sleep unconditionally on a key,
// with no memory comparison of their own, per original_source's
// src/imp/windows.rs. This package therefore tracks, per address, how
// many goroutines are currently asleep on that key, so a wake call knows
// how many times to release. A release call itself blocks until a
// waiter appears; that blocking is time-bounded (100ms) as a mitigation
// for the documented residual race where a waiter returns spuriously or
// via NtWaitForKeyedEvent's own timeout just before the matching release.
var keyedWaiters struct {
	sync.Mutex
	counts map[uintptr]int
}

func keyedKey(addr *uint32) uintptr {
	return uintptr(unsafe.Pointer(addr))
}

func keyedEventWait(addr *uint32, timeout time.Duration) WakeupReason {
	key := keyedKey(addr)

	keyedWaiters.Lock()
	if keyedWaiters.counts == nil {
		keyedWaiters.counts = make(map[uintptr]int)
	}
	keyedWaiters.counts[key]++
	keyedWaiters.Unlock()

	status, _, _ := procNtWaitForKeyedEvent.Call(
		uintptr(keyedEventHandle),
		key,
		0,
		uintptr(unsafe.Pointer(ntTimeoutPtr(timeout))),
	)

	keyedWaiters.Lock()
	if keyedWaiters.counts[key] > 0 {
		keyedWaiters.counts[key]--
		if keyedWaiters.counts[key] == 0 {
			delete(keyedWaiters.counts, key)
		}
	}
	keyedWaiters.Unlock()

	switch uint32(status) {
	case 0:
		return Unknown
	case ntStatusTimeout:
		if timeout != Forever {
			return TimedOut
		}
		logf(LevelWarn, "NtWaitForKeyedEvent: STATUS_TIMEOUT with no timeout set")
		return Unknown
	default:
		logf(LevelWarn, "NtWaitForKeyedEvent: unrecognized status 0x%x", uint32(status))
		return Unknown
	}
}

func keyedEventWake(addr *uint32) int {
	key := keyedKey(addr)

	keyedWaiters.Lock()
	n := keyedWaiters.counts[key]
	delete(keyedWaiters.counts, key)
	keyedWaiters.Unlock()

	releaseTimeout := int64ToPtr(ntTimeout100ns(100 * time.Millisecond))
	for i := 0; i < n; i++ {
		status, _, _ := procNtReleaseKeyedEvent.Call(
			uintptr(keyedEventHandle),
			key,
			0,
			uintptr(unsafe.Pointer(releaseTimeout)),
		)
		debugAssert(uint32(status) == 0 || uint32(status) == ntStatusTimeout,
			"NtReleaseKeyedEvent: unrecognized status 0x%x", uint32(status))
	}
	return n
}

// ntTimeoutPtr converts a duration into the *int64 form
// NtWaitForKeyedEvent expects: nil for an infinite wait, otherwise a
// pointer to a negative (relative) 100-nanosecond count.
func ntTimeoutPtr(timeout time.Duration) *int64 {
	if timeout == Forever {
		return nil
	}
	return int64ToPtr(ntTimeout100ns(timeout))
}

func ntTimeout100ns(d time.Duration) int64 {
	n := d.Nanoseconds() / 100
	if n <= 0 {
		n = 1
	}
	return -n
}

func int64ToPtr(v int64) *int64 { return &v }
