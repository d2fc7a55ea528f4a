//go:build fuchsia

package parking

// Fuchsia's zx_futex_wait/zx_futex_wake are vDSO entry points reached in
// the Rust original (original_source/src/futex/fuchsia.rs) via a dynamic
// link against libzircon. Go has no public, non-cgo binding for them —
// the runtime's own Fuchsia port reaches them through an unexported vDSO
// table this package cannot call into. Fuchsia therefore has no adapter
// file of its own: it falls back to the condvar-based backend in
// backend_generic.go, whose build constraint already includes every
// target without a dedicated native adapter, Fuchsia included.
