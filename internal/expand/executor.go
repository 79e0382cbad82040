package expand

// Executor runs replay tasks off the key-event thread.
// Injecting a synchronous executor makes the replay deterministic in
// tests; production uses GoExecutor.
type Executor interface {
	Submit(task func())
}

// GoExecutor runs each task on its own goroutine.
type GoExecutor struct{}

// Submit starts the task and returns immediately.
func (GoExecutor) Submit(task func()) {
	go task()
}

// SyncExecutor runs each task inline on the caller's goroutine.
type SyncExecutor struct{}

// Submit runs the task before returning.
func (SyncExecutor) Submit(task func()) {
	task()
}
