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

import "sync"

// Pair holds the two values of a Zip, in the order the futures were passed.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Zip returns a Future that delivers the pair of both values only once both
// sides have delivered, and that cancels as soon as either side cancels;
// the first cancellation wins and its cause propagates.
//
// Explicitly canceling the returned Future cancels both constituents.
func Zip[T, U any](a *Future[T], b *Future[U]) *Future[Pair[T, U]] {
	next := newFuture[Pair[T, U]](a.core)

	var (
		mu   sync.Mutex
		pair Pair[T, U]
		left = 2
	)
	half := func(set func(*Pair[T, U])) {
		mu.Lock()
		set(&pair)
		left--
		done := left == 0
		both := pair
		mu.Unlock()
		if done {
			next.deliver(both)
		}
	}

	a.OnDeliver(func(val T) {
		half(func(p *Pair[T, U]) { p.First = val })
	})
	b.OnDeliver(func(val U) {
		half(func(p *Pair[T, U]) { p.Second = val })
	})
	a.OnCancel(func(cause error) {
		next.cancel(cause, false)
	})
	b.OnCancel(func(cause error) {
		next.cancel(cause, false)
	})
	next.OnCancel(func(cause error) {
		a.Cancel(cause)
		b.Cancel(cause)
	})
	return next
}

// Join returns a Future that collects the results of all the provided
// futures into a slice whose order matches the input order, populated once
// every member has delivered.
//
// As soon as any member cancels, the joined Future cancels with that
// member's cause; the first terminal event wins, and whatever the remaining
// members do later is ignored. Joining nothing delivers immediately.
func Join[T any](futures ...*Future[T]) *Future[[]T] {
	var core *groupCore
	if len(futures) != 0 {
		core = futures[0].core
	}
	next := newFuture[[]T](core)
	if len(futures) == 0 {
		next.deliver(nil)
		return next
	}

	var (
		mu      sync.Mutex
		results = make([]T, len(futures))
		left    = len(futures)
	)
	for i, f := range futures {
		i := i
		f.OnDeliver(func(val T) {
			mu.Lock()
			results[i] = val
			left--
			done := left == 0
			mu.Unlock()
			if done {
				next.deliver(results)
			}
		})
		f.OnCancel(func(cause error) {
			next.cancel(cause, false)
		})
	}
	return next
}
