// Package sched provides the single-threaded scheduling primitives the
// navigation coordinator runs on: a deferred-work queue ("next turn") and
// cancellable timers.
//
// Two implementations exist:
//   - Loop — a production run loop backed by one goroutine
//   - Manual — a test pump where the caller controls turns and time
//
// The coordinator never touches time.AfterFunc or goroutines directly; all
// asynchrony goes through this interface so ordering is identical in tests
// and in production.
package sched

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. Calling Stop on an already-fired or
	// already-stopped timer is a no-op.
	Stop()
}

// Scheduler queues deferred work and schedules timers. Implementations must
// run all callbacks sequentially: no two callbacks ever execute at the same
// time, and Defer callbacks run in submission order.
type Scheduler interface {
	// Defer enqueues fn to run on the next turn, after the currently
	// executing turn (if any) completes.
	Defer(fn func())

	// After schedules fn to run once d has elapsed. The returned Timer
	// cancels it.
	After(d time.Duration, fn func()) Timer

	// Now reports the scheduler's current time.
	Now() time.Time
}
