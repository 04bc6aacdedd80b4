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

// combinators.go: derives new futures from existing ones. Every combinator
// is built purely on OnDeliver/OnCancel, so it inherits the exactly-once,
// race-free guarantees of the core, and every callback evaluation is
// panic-trapped into a cancellation of the derived future.
//
// The type-changing combinators are top-level functions, since Go methods
// can't introduce new type parameters; the type-preserving ones are methods.

package future

// Map returns a Future that delivers fn applied to the source's value once
// the source delivers, and that cancels with the same cause once the source
// cancels (without evaluating fn).
//
// If fn panics, the returned Future cancels with a *PanicError cause.
func Map[T, U any](f *Future[T], fn func(val T) U) *Future[U] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	next := newFuture[U](f.core)
	f.OnDeliver(func(val T) {
		mapped, perr := run(func() U { return fn(val) })
		if perr != nil {
			next.cancel(perr, false)
			return
		}
		next.deliver(mapped)
	})
	f.OnCancel(func(cause error) {
		next.cancel(cause, false)
	})
	return next
}

// FlatMap returns a Future that, once the source delivers, evaluates fn to
// obtain a second Future and forwards that Future's eventual outcome,
// delivered or canceled. If the source cancels, the returned Future cancels
// with the same cause and fn is never evaluated.
//
// If fn panics, or returns a nil Future, the returned Future cancels with
// that failure as the cause.
func FlatMap[T, U any](f *Future[T], fn func(val T) *Future[U]) *Future[U] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	next := newFuture[U](f.core)
	f.OnDeliver(func(val T) {
		inner, perr := run(func() *Future[U] { return fn(val) })
		if perr != nil {
			next.cancel(perr, false)
			return
		}
		if inner == nil {
			next.cancel(errNilFuture, false)
			return
		}
		inner.OnDeliver(next.deliver)
		inner.OnCancel(func(cause error) {
			next.cancel(cause, false)
		})
	})
	f.OnCancel(func(cause error) {
		next.cancel(cause, false)
	})
	return next
}

// FlatMapOk is FlatMap for callbacks that may simply have no value to
// chain to: fn returning ok == false cancels the returned Future with no
// cause, instead of chaining to a further Future.
func FlatMapOk[T, U any](f *Future[T], fn func(val T) (U, bool)) *Future[U] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	return FlatMap(f, func(val T) *Future[U] {
		mapped, ok := fn(val)
		if !ok {
			return deadCall[U](f.core, nil)
		}
		return deliveredCall(f.core, mapped)
	})
}

// FlatMapErr is FlatMap for callbacks that return a two-branch result:
// a non-nil error cancels the returned Future with that error as the cause.
func FlatMapErr[T, U any](f *Future[T], fn func(val T) (U, error)) *Future[U] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	return FlatMap(f, func(val T) *Future[U] {
		mapped, err := fn(val)
		if err != nil {
			return deadCall[U](f.core, err)
		}
		return deliveredCall(f.core, mapped)
	})
}

// Filter returns a Future that forwards the source's value only if pred
// accepts it, and that otherwise cancels with no cause. A cancellation of
// the source propagates with its cause; a panic in pred cancels with a
// *PanicError cause.
func (f *Future[T]) Filter(pred func(val T) bool) *Future[T] {
	if pred == nil {
		panic(nilCallbackPanicMsg)
	}
	next := newFuture[T](f.core)
	f.OnDeliver(func(val T) {
		ok, perr := run(func() bool { return pred(val) })
		if perr != nil {
			next.cancel(perr, false)
			return
		}
		if !ok {
			next.cancel(nil, false)
			return
		}
		next.deliver(val)
	})
	f.OnCancel(func(cause error) {
		next.cancel(cause, false)
	})
	return next
}

// OrElse returns a Future that always ends up delivered: with the source's
// value if the source delivers, or with val if the source cancels.
//
// Explicitly canceling the returned Future cancels the source instead; the
// returned Future itself stays eligible to receive the fallback once the
// source's cancellation comes back around.
func (f *Future[T]) OrElse(val T) *Future[T] {
	return f.OrElseFn(func(error) T { return val })
}

// OrElseFn is OrElse with the fallback computed from the cancellation
// cause (which may be nil).
//
// A panic while evaluating fallback is fatal for the returned Future: it's
// force-canceled with the *PanicError cause, with no further fallback
// applied. This is deliberately stricter than FlatMap's handling of
// callback panics; OrElse is the recovery combinator, and a broken recovery
// has nothing left to recover with.
func (f *Future[T]) OrElseFn(fallback func(cause error) T) *Future[T] {
	if fallback == nil {
		panic(nilCallbackPanicMsg)
	}
	next := newFuture[T](f.core)
	// redirect cancellations of next to the source. the source's own
	// cancellation then flows back as the fallback delivery below.
	next.setGuard(func(cause error) bool {
		f.Cancel(cause)
		return false
	})
	f.OnDeliver(next.deliver)
	f.OnCancel(func(cause error) {
		val, perr := run(func() T { return fallback(cause) })
		if perr != nil {
			next.cancel(perr, true)
			return
		}
		next.deliver(val)
	})
	return next
}

// Then discards the source's result and simply returns next. It's a
// sequencing helper for "run the source for effect, then continue with this
// other future"; it performs no propagation of its own.
func Then[T, U any](f *Future[T], next *Future[U]) *Future[U] {
	return next
}
