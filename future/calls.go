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

// calls.go: the shared implementations behind the package-level and the
// group-level constructors.

package future

import "context"

func deliveredCall[T any](core *groupCore, val T) *Future[T] {
	f := newFuture[T](core)
	f.deliver(val)
	return f
}

func deadCall[T any](core *groupCore, cause error) *Future[T] {
	f := newFuture[T](core)
	f.cancel(cause, false)
	return f
}

func scheduleCall[T any](core *groupCore, compute func() T) *Future[T] {
	if compute == nil {
		panic(nilCallbackPanicMsg)
	}

	core.reserveTask()
	f := newFuture[T](core)
	core.executor().Exec(func() {
		defer core.freeTask()
		f.Deliver(compute)
	})
	return f
}

func watchCall[T any](core *groupCore, ctx context.Context) *Future[T] {
	if ctx == nil {
		panic(nilCtxPanicMsg)
	}

	f := newFuture[T](core)
	if ctx.Done() == nil {
		// this ctx can never be done, so it can never cancel the future.
		// return the equivalent plain pending future, without spending a
		// goroutine on it.
		return f
	}

	go func() {
		<-ctx.Done()
		f.Cancel(ctx.Err())
	}()
	return f
}
