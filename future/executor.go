package future

// Executor is the task-execution abstraction scheduled computations are
// submitted to. Implementations own the execution strategy: a goroutine per
// task, a bounded worker pool, a test's synchronous runner, and so on.
// The future primitive itself never decides where code runs.
type Executor interface {
	// Exec arranges for task to run, exactly once. It must not drop the
	// task: a scheduled future's delivery depends on it running.
	Exec(task func())
}

// ExecFunc adapts a plain function to the Executor interface.
type ExecFunc func(task func())

func (fn ExecFunc) Exec(task func()) { fn(task) }

// goExecutor is the default Executor. It runs every task on a new goroutine.
type goExecutor struct{}

func (goExecutor) Exec(task func()) { go task() }

var defExecutor Executor = goExecutor{}
