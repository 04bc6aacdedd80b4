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

// Package future provides a tri-state asynchronous value and the combinator
// algebra for composing chains of dependent asynchronous computations.
//
// A Future is a write-once container for the result of some asynchronous
// work. Unlike the usual two-state promise, it distinguishes three phases,
// and it can be in only one of them, at any time:
// Pending: the computation that corresponds to this Future has not finished.
// Delivered: the computation finished and its value is stored in the Future.
// Canceled: the value will never arrive; an optional error explains why.
//
// Once a Future is Delivered or Canceled it never changes again. Producers
// complete a Future by calling Deliver or Cancel exactly once; consumers
// register continuations through OnDeliver and OnCancel, or compose new
// Future values through the combinators (Map, FlatMap, Filter, Zip, OrElse,
// Join, ...). None of these operations block the calling goroutine; there
// is no waiting primitive in this package, composition is always via
// registered continuations.
//
// General Notes:-
//
// * Failure in any stage of a chain cancels all dependent stages, carrying
// the original cause, without any panic crossing a goroutine boundary.
//
// * A panic raised while evaluating a computation passed to Deliver, or a
// callback passed to a combinator, is recovered and converted into a
// cancellation whose cause is a *PanicError wrapping the panic value.
//
// * A panic raised by a registered listener is trapped, reported to the
// uncaught-failure handler (the Group's, if the Future was created through
// a Group, otherwise the process-wide one), and never stops the remaining
// listeners nor alters the Future's state. A delivering goroutine can't be
// killed by a listener's bug.
//
// * Listeners registered on a single Future fire in registration order.
// Listener invocation always happens outside the Future's internal lock,
// so a listener may safely re-enter the same Future.
//
// * Cancellation is cooperative and permanent. It doesn't interrupt an
// in-flight computation; it only prevents a future delivery from taking
// effect, and immediately notifies the cancel listeners. Timeout policy
// belongs to the caller, e.g. by layering Watch and Zip.
//
// Misuse Notes:-
//
// * Calling Deliver on an already-delivered Future is a programming error
// and panics with ErrDeliveredTwice. Calling Cancel on an already-terminal
// Future is tolerated and simply reports whether the Future is canceled.
//
// * All constructors and combinators panic if passed a nil callback.
package future
