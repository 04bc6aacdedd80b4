// Copyright 2024 The blueeyes Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import (
	"sync"

	"github.com/mccv/blueeyes/future/internal/state"
)

// Future is a write-once, tri-state container for the result of an
// asynchronous computation.
//
// The zero value is a usable pending Future that reports failures to the
// process-wide uncaught handler; New, or a Group, should still be preferred.
type Future[T any] struct {
	// core carries the uncaught-failure handler and the scheduling
	// facilities shared by all futures created through the same Group.
	// nil means the package-level defaults.
	core *groupCore

	// mu guards the fields below. It's never held while user code runs.
	mu sync.Mutex

	// the current lifecycle phase.
	// transitions happen under mu; the word itself is atomic, so the
	// read-only accessors don't need the lock.
	state state.Word

	// the terminal payload.
	// val is immutable once the state word reads Delivered, cause once it
	// reads Canceled (a canceled future may carry a nil cause).
	val   T
	cause error

	// continuations registered while pending, in registration order.
	// drained (set to nil) by the terminal transition that fires them.
	onDeliver []func(T)
	onCancel  []func(error)

	// guard, when set, intercepts Cancel calls made while pending, and
	// reports whether the cancellation should still be applied locally.
	// it's how OrElse redirects cancellation to its source.
	guard func(cause error) bool
}

func newFuture[T any](core *groupCore) *Future[T] {
	return &Future[T]{core: core}
}

// Deliver evaluates compute, exactly once, and completes the Future with
// the value it returns.
//
// If the Future is already canceled, the delivery can never take effect,
// so the computation is skipped and the call is a silent no-op.
// If the Future is already delivered, Deliver panics with ErrDeliveredTwice:
// a second delivery is a programmer error, not a race to tolerate silently.
//
// A panic raised by compute doesn't escape to the caller; it's recovered
// and the Future is canceled with a *PanicError cause instead.
//
// On success, every registered result listener is invoked in registration
// order, outside the internal lock, with each listener's own panic trapped,
// so one broken listener can't stop the others.
func (f *Future[T]) Deliver(compute func() T) {
	if compute == nil {
		panic(nilCallbackPanicMsg)
	}
	switch f.state.Load() {
	case state.Canceled:
		return
	case state.Delivered:
		panic(ErrDeliveredTwice)
	}

	val, perr := run(compute)
	if perr != nil {
		f.cancel(perr, false)
		return
	}
	f.deliver(val)
}

// deliver performs the Pending -> Delivered transition with an already
// computed value. It no-ops on a canceled future, and panics on a
// delivered one, mirroring Deliver.
func (f *Future[T]) deliver(val T) {
	f.mu.Lock()
	switch f.state.Load() {
	case state.Canceled:
		f.mu.Unlock()
		return
	case state.Delivered:
		f.mu.Unlock()
		panic(ErrDeliveredTwice)
	}
	f.val = val
	listeners := f.onDeliver
	f.onDeliver, f.onCancel = nil, nil
	f.guard = nil
	f.state.Set(state.Delivered)
	f.mu.Unlock()

	for _, fn := range listeners {
		f.notifyDeliver(fn, val)
	}
}

// Cancel attempts the Pending -> Canceled transition, recording cause
// (which may be omitted) as the cancellation cause.
//
// It returns true if the Future is now canceled, whether this call
// performed the transition or the Future was already canceled, and false
// if it couldn't be canceled because a value was already delivered.
//
// On a first-time transition, every registered cancel listener is invoked
// in registration order, outside the internal lock, with panics trapped
// the same way Deliver traps them.
func (f *Future[T]) Cancel(cause ...error) bool {
	var err error
	if len(cause) != 0 {
		err = cause[0]
	}
	return f.cancel(err, false)
}

// cancel implements Cancel. force bypasses the cancel guard; it's used
// for cancellations that must stick, like a failed OrElse fallback.
func (f *Future[T]) cancel(cause error, force bool) bool {
	f.mu.Lock()
	switch f.state.Load() {
	case state.Delivered:
		f.mu.Unlock()
		return false
	case state.Canceled:
		f.mu.Unlock()
		return true
	}
	if g := f.guard; g != nil && !force {
		// run the guard outside the lock; it may re-enter this future.
		f.mu.Unlock()
		if !g(cause) {
			return false
		}
		return f.cancel(cause, true)
	}
	f.cause = cause
	listeners := f.onCancel
	f.onDeliver, f.onCancel = nil, nil
	f.guard = nil
	f.state.Set(state.Canceled)
	f.mu.Unlock()

	for _, fn := range listeners {
		f.notifyCancel(fn, cause)
	}
	return true
}

// OnDeliver registers fn to run with the value when/if the Future is
// delivered.
//
// If the Future is already delivered, fn is invoked immediately, on the
// calling goroutine. If it's already canceled, fn is dropped and will never
// be invoked. Otherwise it's appended to the result listeners.
func (f *Future[T]) OnDeliver(fn func(val T)) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	f.mu.Lock()
	switch f.state.Load() {
	case state.Canceled:
		f.mu.Unlock()
		return
	case state.Delivered:
		val := f.val
		f.mu.Unlock()
		f.notifyDeliver(fn, val)
		return
	}
	f.onDeliver = append(f.onDeliver, fn)
	f.mu.Unlock()
}

// OnCancel registers fn to run with the cancellation cause (possibly nil)
// when/if the Future is canceled.
//
// If the Future is already canceled, fn is invoked immediately, on the
// calling goroutine. If it's already delivered, fn is dropped; there is
// nothing to cancel anymore. Otherwise it's appended to the cancel
// listeners.
func (f *Future[T]) OnCancel(fn func(cause error)) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	f.mu.Lock()
	switch f.state.Load() {
	case state.Delivered:
		f.mu.Unlock()
		return
	case state.Canceled:
		cause := f.cause
		f.mu.Unlock()
		f.notifyCancel(fn, cause)
		return
	}
	f.onCancel = append(f.onCancel, fn)
	f.mu.Unlock()
}

// setGuard installs the cancel guard. It must be called before the Future
// is shared with any other goroutine.
func (f *Future[T]) setGuard(g func(cause error) bool) {
	f.guard = g
}

// notifyDeliver runs a result listener, trapping any panic so a broken
// listener can't kill the delivering goroutine or starve later listeners.
func (f *Future[T]) notifyDeliver(fn func(T), val T) {
	defer f.trapListenerPanic()
	fn(val)
}

// notifyCancel is notifyDeliver for cancel listeners.
func (f *Future[T]) notifyCancel(fn func(error), cause error) {
	defer f.trapListenerPanic()
	fn(cause)
}

// trapListenerPanic must be deferred around every listener invocation.
func (f *Future[T]) trapListenerPanic() {
	if v := recover(); v != nil {
		f.core.uncaught(&PanicError{V: v})
	}
}

// State returns the current lifecycle phase of the Future.
func (f *Future[T]) State() State {
	return State(f.state.Load())
}

// IsPending returns true while the Future hasn't reached a terminal state.
func (f *Future[T]) IsPending() bool {
	return f.state.Load() == state.Pending
}

// IsDelivered returns true once a value has been delivered.
func (f *Future[T]) IsDelivered() bool {
	return f.state.Load() == state.Delivered
}

// IsCanceled returns true once the Future has been canceled.
func (f *Future[T]) IsCanceled() bool {
	return f.state.Load() == state.Canceled
}

// IsDone returns true once the Future is either delivered or canceled.
func (f *Future[T]) IsDone() bool {
	return f.state.Load().Terminal()
}

// Value returns the delivered value, if any. Once ok is true, the returned
// value never changes.
func (f *Future[T]) Value() (val T, ok bool) {
	if f.state.Load() != state.Delivered {
		return val, false
	}
	return f.val, true
}

// Cause returns the cancellation cause. ok is true only if the Future is
// canceled; the cause itself may still be nil, e.g. after a Filter miss.
func (f *Future[T]) Cause() (cause error, ok bool) {
	if f.state.Load() != state.Canceled {
		return nil, false
	}
	return f.cause, true
}

// Result converts the terminal state into the usual two-branch Go result:
// the delivered value, or a non-nil error. A cancellation without a cause
// is reported as ErrCanceled, so the error branch is never empty.
//
// Calling Result on a pending Future violates its precondition and panics
// with ErrStillPending.
func (f *Future[T]) Result() (T, error) {
	switch f.state.Load() {
	case state.Delivered:
		return f.val, nil
	case state.Canceled:
		var zero T
		if f.cause != nil {
			return zero, f.cause
		}
		return zero, ErrCanceled
	}
	panic(ErrStillPending)
}

// run evaluates compute, converting a panic into a *PanicError.
func run[T any](compute func() T) (val T, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{V: v}
		}
	}()
	return compute(), nil
}
