// Package notify provides the detached task runner used for fire-and-forget
// notification dispatch. Handlers never wait on a dispatched task and never
// observe its outcome.
package notify

import "sync"

// Dispatcher schedules a task to run outside the request path.
type Dispatcher interface {
	Dispatch(task func())
}

// AsyncDispatcher runs each task on its own goroutine. Wait exists so a
// shutting-down process can let in-flight notifications finish.
type AsyncDispatcher struct {
	wg sync.WaitGroup
}

// NewAsyncDispatcher creates a new AsyncDispatcher
func NewAsyncDispatcher() *AsyncDispatcher {
	return &AsyncDispatcher{}
}

// Dispatch schedules the task and returns immediately.
func (d *AsyncDispatcher) Dispatch(task func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		task()
	}()
}

// Wait blocks until every dispatched task has finished.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
