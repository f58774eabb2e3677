package grabber

import (
	"sort"
	"sync"
	"sync/atomic"
)

// taskHandle is the cancellation flag of one running task.
type taskHandle struct {
	// id is the task id.
	id string
	// cancelled is set once by cancel.
	cancelled atomic.Bool
	// cancelCh is closed by cancel so waiting goroutines can select on it.
	cancelCh chan struct{}
	// once guards closing cancelCh.
	once sync.Once
}

func newTaskHandle(id string) *taskHandle {
	return &taskHandle{
		id:       id,
		cancelCh: make(chan struct{}),
	}
}

func (h *taskHandle) cancel() {
	h.cancelled.Store(true)
	h.once.Do(func() { close(h.cancelCh) })
}

func (h *taskHandle) isCancelled() bool {
	return h.cancelled.Load()
}

func (h *taskHandle) done() <-chan struct{} {
	return h.cancelCh
}

// taskRegistry maps running task ids to their cancellation flags.
type taskRegistry struct {
	mu    sync.Mutex
	tasks map[string]*taskHandle
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: make(map[string]*taskHandle)}
}

// register adds id, rejecting an id that is still running.
func (r *taskRegistry) register(id string) (*taskHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[id]; exists {
		return nil, ErrTaskAlreadyRunning
	}

	handle := newTaskHandle(id)
	r.tasks[id] = handle

	return handle, nil
}

// remove retires handle. A newer registration under the same id is left alone.
func (r *taskRegistry) remove(handle *taskHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, exists := r.tasks[handle.id]; exists && current == handle {
		delete(r.tasks, handle.id)
	}
}

// cancel flags id and reports whether it was tracked.
func (r *taskRegistry) cancel(id string) bool {
	r.mu.Lock()
	handle, exists := r.tasks[id]
	r.mu.Unlock()

	if !exists {
		return false
	}

	handle.cancel()

	return true
}

// cancelAll flags every tracked task and returns their number.
func (r *taskRegistry) cancelAll() int {
	r.mu.Lock()
	handles := make([]*taskHandle, 0, len(r.tasks))

	for _, handle := range r.tasks {
		handles = append(handles, handle)
	}
	r.mu.Unlock()

	for _, handle := range handles {
		handle.cancel()
	}

	return len(handles)
}

// ids returns the tracked task ids in sorted order.
func (r *taskRegistry) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
