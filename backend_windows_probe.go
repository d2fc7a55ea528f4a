//go:build windows

package parking

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/windows"
)

// backendKind identifies which of the two Windows wait/wake mechanisms
// this process resolved to on its first wait or wake.
type backendKind int32

const (
	backendWaitOnAddress backendKind = 0
	backendNTKeyedEvents backendKind = 1
)

// probeState drives the EMPTY -> INITIALIZING -> READY cache described in
// spec §4.7, modeled on the teacher's FastState CAS state machine
// (state.go in the eventloop package this module is grounded on), shrunk
// from a 5-state loop lifecycle to this 3-state init-once cell.
type probeState int32

const (
	probeEmpty probeState = iota
	probeInitializing
	probeReady
)

// probeCache caches the result of the one-time Windows backend probe.
// Cache-line padded so repeated reads from many goroutines never provoke
// false sharing with neighboring package state.
var probeCache struct {
	_     [64]byte
	state atomic.Int32
	_     [60]byte
	kind  atomic.Int32
	_     [60]byte
}

// selectedBackend returns which Windows backend to use, probing exactly
// once and caching the result. Concurrent callers during the first probe
// spin-wait rather than racing the probe itself.
func selectedBackend() backendKind {
	for {
		switch probeState(probeCache.state.Load()) {
		case probeReady:
			return backendKind(probeCache.kind.Load())
		case probeInitializing:
			runtime.Gosched()
		default:
			if probeCache.state.CompareAndSwap(int32(probeEmpty), int32(probeInitializing)) {
				kind := probeBackends()
				probeCache.kind.Store(int32(kind))
				probeCache.state.Store(int32(probeReady))
				return kind
			}
		}
	}
}

// probeBackends resolves WaitOnAddress first (Windows 8+), falling back
// to NT Keyed Events (Windows XP+). Both missing is a contract violation
// per spec §7: this package has no further fallback on Windows.
func probeBackends() backendKind {
	synch := windows.NewLazySystemDLL("api-ms-win-core-synch-l1-2-0.dll")
	if synch.Load() == nil {
		procWaitOnAddress = synch.NewProc("WaitOnAddress")
		procWakeByAddressAll = synch.NewProc("WakeByAddressAll")
		if procWaitOnAddress.Find() == nil && procWakeByAddressAll.Find() == nil {
			logf(LevelDebug, "selected WaitOnAddress backend")
			return backendWaitOnAddress
		}
	}

	ntdll := windows.NewLazySystemDLL("ntdll.dll")
	if ntdll.Load() == nil {
		procNtCreateKeyedEvent = ntdll.NewProc("NtCreateKeyedEvent")
		procNtWaitForKeyedEvent = ntdll.NewProc("NtWaitForKeyedEvent")
		procNtReleaseKeyedEvent = ntdll.NewProc("NtReleaseKeyedEvent")
		if procNtCreateKeyedEvent.Find() == nil &&
			procNtWaitForKeyedEvent.Find() == nil &&
			procNtReleaseKeyedEvent.Find() == nil {
			h, _, callErr := procNtCreateKeyedEvent.Call(0, 0, 0, 0)
			if h == 0 {
				logf(LevelWarn, "NtCreateKeyedEvent failed: %v", callErr)
			} else {
				keyedEventHandle = windows.Handle(h)
				logf(LevelDebug, "selected NT Keyed Events backend")
				return backendNTKeyedEvents
			}
		}
	}

	violatef("parking: neither WaitOnAddress nor NT Keyed Events is available on this system")
	panic("unreachable")
}

var (
	procWaitOnAddress    *windows.LazyProc
	procWakeByAddressAll *windows.LazyProc

	procNtCreateKeyedEvent  *windows.LazyProc
	procNtWaitForKeyedEvent *windows.LazyProc
	procNtReleaseKeyedEvent *windows.LazyProc
	keyedEventHandle        windows.Handle
)
