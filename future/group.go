package future

import "sync"

// Config configures a Group.
type Config struct {
	// UncaughtHandler receives the failures that have nowhere else to go:
	// panics recovered from listeners registered on futures created through
	// this group, or derived from them. If nil, the process-wide handler
	// is used (see SetUncaughtHandler).
	UncaughtHandler func(err error)

	// Executor runs the computations passed to Schedule. If nil, every
	// computation runs on its own goroutine.
	Executor Executor

	// Size is the allowed number of in-flight scheduled computations in
	// this group. Schedule blocks while the group is full.
	// If it's 0 or less, then the group size is unlimited.
	Size int
}

// Group ties futures to a shared uncaught-failure handler, an execution
// strategy, and a wait facility for everything scheduled through it.
//
// Futures derived from a group's futures through combinators inherit the
// group, so a listener failure anywhere down a chain still reports to the
// group's handler.
type Group[T any] struct {
	core groupCore
}

// NewGroup creates a new Group, optionally configured by the first non-nil
// Config passed.
func NewGroup[T any](c ...*Config) *Group[T] {
	g := &Group[T]{}

	if len(c) != 0 && c[0] != nil {
		if cb := c[0].UncaughtHandler; cb != nil {
			g.core.uncaughtHandler = cb
		}
		if exec := c[0].Executor; exec != nil {
			g.core.exec = exec
		}
		if size := c[0].Size; size > 0 {
			g.core.reserveChan = make(chan struct{}, size)
		}
	}

	return g
}

// New returns a pending Future tied to this group.
func (g *Group[T]) New() *Future[T] {
	return newFuture[T](&g.core)
}

// Delivered returns a Future already delivered with val.
func (g *Group[T]) Delivered(val T) *Future[T] {
	return deliveredCall(&g.core, val)
}

// Dead returns a Future already canceled, with the optional cause.
func (g *Group[T]) Dead(cause ...error) *Future[T] {
	var err error
	if len(cause) != 0 {
		err = cause[0]
	}
	return deadCall[T](&g.core, err)
}

// Schedule submits compute to the group's executor and returns a pending
// Future that is delivered with the computation's value when it finishes,
// or canceled with a *PanicError cause if it panics.
//
// Schedule blocks while Size computations are already in flight.
func (g *Group[T]) Schedule(compute func() T) *Future[T] {
	return scheduleCall(&g.core, compute)
}

// Wait blocks until every computation scheduled through this group has
// finished.
func (g *Group[T]) Wait() {
	g.core.wg.Wait()
}

// groupCore is the non-generic heart of a Group, shared by reference with
// every future the group creates, so combinators can hand it down across
// type changes.
type groupCore struct {
	uncaughtHandler func(err error)

	wg          sync.WaitGroup
	reserveChan chan struct{}

	exec Executor
}

// reserveTask accounts for one scheduled computation, blocking while the
// group is at capacity. A nil core never limits.
func (c *groupCore) reserveTask() {
	if c == nil {
		return
	}
	// add to the wait group before reserving, so the task is accounted for
	// even while it's still blocked on the reservation.
	c.wg.Add(1)
	if c.reserveChan != nil {
		c.reserveChan <- struct{}{}
	}
}

func (c *groupCore) freeTask() {
	if c == nil {
		return
	}
	c.wg.Done()
	if c.reserveChan != nil {
		<-c.reserveChan
	}
}

// executor returns the executor scheduled computations run on.
func (c *groupCore) executor() Executor {
	if c != nil && c.exec != nil {
		return c.exec
	}
	return defExecutor
}

// uncaught reports a trapped listener failure to the group's handler,
// falling back to the process-wide one.
func (c *groupCore) uncaught(err error) {
	if c != nil && c.uncaughtHandler != nil {
		c.uncaughtHandler(err)
		return
	}
	defUncaughtHandler(err)
}
