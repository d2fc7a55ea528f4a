// Package parking provides cross-platform thread-parking primitives built on
// a single pointer-sized atomic word shared with the caller's own state.
//
// # Architecture
//
// Every primitive in this package operates on an [AtomicCell]: a
// pointer-sized atomic split into 5 caller-owned "free" bits and a
// reserved region the package uses for its own bookkeeping. Two building
// blocks are layered on top of it:
//
//   - [AtomicCell.CompareAndWait] / [AtomicCell.StoreAndWake] implement a
//     multi-waiter broadcast ("Waiters"): any number of goroutines (or OS
//     threads, via cgo callers) can wait on the same cell, and a single
//     store wakes all of them.
//   - [Parker] implements a single-waiter park/unpark primitive, the way
//     a mutex or channel implementation parks exactly one goroutine at a
//     time and wakes it back up.
//
// Both are intended as low-level building blocks for higher-level
// synchronization objects, not as a replacement for [sync.Mutex] or
// channels in ordinary application code.
//
// # Platform Support
//
// The OS wait/wake primitive is implemented using the fastest mechanism
// each target offers, without cgo or libc linkage:
//   - Linux / Android: futex(2)
//   - FreeBSD: _umtx_op(2)
//   - DragonFly BSD: umtx_sleep(2) / umtx_wakeup(2)
//   - OpenBSD: futex(2)
//   - Darwin / iOS: the undocumented __ulock_wait / __ulock_wake syscalls
//   - Windows 8+: WaitOnAddress / WakeByAddressAll, with an NT Keyed
//     Events fallback for older systems, selected once by a runtime probe
//     on the first wait or wake
//   - Fuchsia and every other target: a portable condition-variable
//     fallback
//
// # Thread Safety
//
// An [AtomicCell] may be shared by any number of goroutines. The Waiters
// and Parker APIs must not be mixed on the same cell at the same time —
// see the package invariants documented on [AtomicCell].
//
// # Usage
//
//	var cell parking.AtomicCell
//	p := parking.NewParker(&cell)
//
//	go func() {
//	    // ... produce a value, then:
//	    p.Unpark()
//	}()
//
//	p.Park(parking.Forever)
//
// # Error Handling
//
// This package has no fallible public operations: contract violations
// (double-parking, waiting with a zero timeout, passing non-zero reserved
// bits) panic immediately rather than returning an error, and kernel
// return values the package cannot interpret are logged and coerced to
// [Unknown] rather than propagated. See [ContractViolation].
package parking
