//go:build !parkingdebug

package parking

// debugAssert is a no-op in release builds; see assert_debug.go.
func debugAssert(cond bool, format string, args ...any) {}
