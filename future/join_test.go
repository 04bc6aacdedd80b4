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
	"testing"
)

func TestJoin(t *testing.T) {
	t.Run("collects in input order", func(t *testing.T) {
		joined := Join(Delivered(1), Delivered(2), Delivered(3))
		got, ok := joined.Value()
		if !ok {
			t.Fatalf("joined future is %v, want delivered", joined.State())
		}
		if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
			t.Fatalf("joined %v, want [1 2 3]", got)
		}
	})

	t.Run("input order survives out-of-order delivery", func(t *testing.T) {
		a, b, c := New[int](), New[int](), New[int]()
		joined := Join(a, b, c)
		c.Deliver(func() int { return 3 })
		a.Deliver(func() int { return 1 })
		if !joined.IsPending() {
			t.Fatalf("joined future is %v with a member pending", joined.State())
		}
		b.Deliver(func() int { return 2 })
		got, _ := joined.Value()
		if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
			t.Fatalf("joined %v, want [1 2 3]", got)
		}
	})

	t.Run("a dead member cancels without waiting for the rest", func(t *testing.T) {
		wantErr := newPtrError()
		// the last member never resolves; the join must not care.
		joined := Join(Delivered(1), Dead[int](wantErr), New[int]())
		wantCanceled(t, joined, wantErr)
	})

	t.Run("the first terminal event wins", func(t *testing.T) {
		wantErr := newStrError()
		pending := New[int]()
		joined := Join(Delivered(1), Dead[int](wantErr), pending)
		wantCanceled(t, joined, wantErr)

		// whatever the remaining member does later is ignored.
		pending.Deliver(func() int { return 9 })
		wantCanceled(t, joined, wantErr)
	})

	t.Run("joining nothing delivers immediately", func(t *testing.T) {
		joined := Join[int]()
		got, ok := joined.Value()
		if !ok || len(got) != 0 {
			t.Fatalf("Value() = (%v, %v), want an empty delivery", got, ok)
		}
	})

	t.Run("scheduled members are awaited", func(t *testing.T) {
		g := NewGroup[int](&Config{Executor: ExecFunc(func(task func()) { task() })})
		joined := Join(
			g.Schedule(func() int { return 10 }),
			g.Schedule(func() int { return 20 }),
		)
		got, ok := joined.Value()
		if !ok || len(got) != 2 || got[0] != 10 || got[1] != 20 {
			t.Fatalf("joined (%v, %v), want [10 20]", got, ok)
		}
	})
}
