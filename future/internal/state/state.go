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

// Package state holds the lifecycle word of a future and its transition
// rules.
//
// A future starts Pending and moves, exactly once, to either Delivered or
// Canceled. Both terminal values are final: no transition leaves them.
package state

import "sync/atomic"

// State is the lifecycle phase of a future.
type State uint32

const (
	Pending State = iota
	Delivered
	Canceled
)

// Terminal returns whether s is one of the two final phases.
func (s State) Terminal() bool {
	return s != Pending
}

// CanReach reports whether the transition from s to next is legal.
func (s State) CanReach(next State) bool {
	return s == Pending && next.Terminal()
}

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Delivered:
		return "delivered"
	case Canceled:
		return "canceled"
	default:
		return "<unknown>"
	}
}

// Word is the atomically published state of a single future.
//
// Transitions happen while holding the owning future's lock, so the word
// itself only needs to make the current phase visible to lock-free readers.
// Load establishes the usual happens-before with the Set that published
// the phase, which makes the terminal payload safe to read afterwards.
type Word struct {
	v uint32
}

// Load returns the current phase. It may be called without the owning
// future's lock.
func (w *Word) Load() State {
	return State(atomic.LoadUint32(&w.v))
}

// Set publishes the phase s. The caller must hold the owning future's lock
// and must have checked that the transition is legal.
func (w *Word) Set(s State) {
	atomic.StoreUint32(&w.v, uint32(s))
}
