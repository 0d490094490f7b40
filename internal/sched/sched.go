// Package sched provides the timer primitives the session engine schedules
// against: a Clock that hands out cancellable delayed callbacks, a named Task
// slot that enforces cancel-before-reschedule, and a Manual clock for
// deterministic tests.
package sched

import "time"

// Clock supplies current time and delayed callbacks.
// Delivery is monotonic and eventual, never assumed exact.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a single scheduled callback. Stop reports whether the callback
// was cancelled before firing.
type Timer interface {
	Stop() bool
}

// Wall is the real-time Clock backed by the time package.
type Wall struct{}

func (Wall) Now() time.Time { return time.Now() }

func (Wall) AfterFunc(d time.Duration, fn func()) Timer {
	return wallTimer{time.AfterFunc(d, fn)}
}

type wallTimer struct{ t *time.Timer }

func (w wallTimer) Stop() bool { return w.t.Stop() }
