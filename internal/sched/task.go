package sched

import (
	"sync"
	"time"
)

// Task is a named timer slot for one logical concern (a debounce, a throttle
// commit, a retry cascade). Scheduling cancels any prior pending run first,
// so two timers for the same concern never coexist.
type Task struct {
	clock Clock

	mu    sync.Mutex
	timer Timer
}

// NewTask creates an empty task slot on the given clock.
func NewTask(clock Clock) *Task {
	return &Task{clock: clock}
}

// Schedule arranges fn to run after d, replacing any pending run.
func (t *Task) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending run, if any.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
