package future

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is the error returned from Result for a Future that was
	// canceled without a cause.
	ErrCanceled = errors.New("future: canceled")

	// ErrDeliveredTwice is the panic value of a Deliver call on an
	// already-delivered Future.
	ErrDeliveredTwice = errors.New("future: already delivered")

	// ErrStillPending is the panic value of a Result call on a Future that
	// hasn't reached a terminal state yet.
	ErrStillPending = errors.New("future: still pending")

	// errNilFuture is the cancellation cause used when a FlatMap callback
	// returns a nil Future.
	errNilFuture = errors.New("future: callback returned a nil future")
)

// panic messages
const (
	nilCallbackPanicMsg = "future: the provided callback is nil"
	nilCtxPanicMsg      = "future: the provided ctx is nil"
)

// PanicError wraps a panic that was recovered while evaluating a computation
// or a listener, keeping the original panic value accessible.
type PanicError struct {
	// V is the value the original panic call was passed.
	V any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("future: panicked: %v", e.V)
}
