package parking

import "fmt"

// ContractViolation is the panic value raised when a caller breaks one of
// this package's usage invariants: parking a [Parker] that is already
// parked, waiting with a zero timeout, or passing a value with non-zero
// reserved bits to [AtomicCell.CompareAndWait] or [AtomicCell.StoreAndWake].
//
// These are programmer errors, not runtime conditions a caller can
// meaningfully recover from, which is why they panic instead of returning
// an error.
type ContractViolation struct {
	Message string
}

// Error implements the error interface.
func (e *ContractViolation) Error() string {
	return e.Message
}

// violatef panics with a [ContractViolation] built from the given format
// string, the way a failed assertion does.
func violatef(format string, args ...any) {
	panic(&ContractViolation{Message: fmt.Sprintf(format, args...)})
}
