package sched

import (
	"sync"
	"time"
)

// Loop is the production Scheduler: a single goroutine draining a FIFO work
// queue. Defer may be called from any goroutine, including from inside a
// callback running on the loop itself. Timers fire by posting back onto the
// loop, so timer callbacks are serialized with everything else.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
	done   chan struct{}
}

// NewLoop starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 {
			if l.closed {
				l.mu.Unlock()
				return
			}
			l.mu.Unlock()
			<-l.wake
			l.mu.Lock()
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}

// Defer enqueues fn onto the loop.
func (l *Loop) Defer(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After schedules fn on the loop once d elapses.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := time.AfterFunc(d, func() {
		l.Defer(fn)
	})
	return loopTimer{t}
}

// Now reports wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Close stops the loop after the already-queued work drains. Close is
// idempotent. Defer calls after Close are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}

type loopTimer struct {
	t *time.Timer
}

func (lt loopTimer) Stop() {
	lt.t.Stop()
}
