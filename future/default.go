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
	"context"
	"log/slog"
	"sync/atomic"
)

// defCore is used for overriding the core passed to all the constructors
// below, for the purpose of testing.
var defCore *groupCore

// New returns a pending Future.
//
// The producer that obtained it must complete it exactly once, with either
// Deliver or Cancel.
func New[T any]() *Future[T] {
	return newFuture[T](defCore)
}

// Delivered returns a Future that's already in the delivered state, holding
// val. Its result listeners run immediately on registration.
func Delivered[T any](val T) *Future[T] {
	return deliveredCall(defCore, val)
}

// Dead returns a Future that's already in the canceled state, with the
// optional cause. It represents an operation that will never complete,
// without allocating a pending value nobody will ever resolve.
func Dead[T any](cause ...error) *Future[T] {
	var err error
	if len(cause) != 0 {
		err = cause[0]
	}
	return deadCall[T](defCore, err)
}

// Schedule runs compute on the default executor (a new goroutine) and
// returns a pending Future that is delivered with the computation's value
// when it finishes, or canceled with a *PanicError cause if it panics.
//
// To control the execution strategy, or to wait for scheduled computations,
// use a Group instead.
func Schedule[T any](compute func() T) *Future[T] {
	return scheduleCall(defCore, compute)
}

// Watch returns a pending Future that is canceled with ctx.Err() once ctx
// is done. Nothing delivers it; it exists to bridge context-based deadlines
// and cancellation into a chain, typically through Zip.
//
// If ctx can never be done, the returned Future is a plain pending Future.
func Watch[T any](ctx context.Context) *Future[T] {
	return watchCall[T](defCore, ctx)
}

// uncaughtHandlerOverride, when set, replaces the logging fallback below.
var uncaughtHandlerOverride atomic.Pointer[func(err error)]

// SetUncaughtHandler replaces the process-wide handler for trapped listener
// failures. It applies to every future that wasn't created through a Group
// carrying its own UncaughtHandler.
func SetUncaughtHandler(fn func(err error)) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	uncaughtHandlerOverride.Store(&fn)
}

// defUncaughtHandler is the end of the line for trapped listener failures:
// it logs them, so a buggy listener is visible without ever being able to
// kill the goroutine that fired it.
func defUncaughtHandler(err error) {
	if fn := uncaughtHandlerOverride.Load(); fn != nil {
		(*fn)(err)
		return
	}
	slog.Error("future: uncaught failure in listener", "error", err)
}
