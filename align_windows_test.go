//go:build windows

package parking

import (
	"testing"
	"unsafe"
)

// TestProbeCacheAlign verifies the Windows backend-probe cache's two
// atomics land on separate cache lines, the way the teacher's
// align_*_test.go files verify FastState/fastPoller field placement.
func TestProbeCacheAlign(t *testing.T) {
	stateOffset := unsafe.Offsetof(probeCache.state)
	kindOffset := unsafe.Offsetof(probeCache.kind)

	if stateOffset/sizeOfCacheLine == kindOffset/sizeOfCacheLine {
		t.Errorf("probeCache.state (offset %d) and probeCache.kind (offset %d) share a cache line", stateOffset, kindOffset)
	}
}
