package sched

import (
	"sort"
	"time"
)

// Manual is a test Scheduler. Nothing runs until the test pumps it: Pump
// drains the deferred queue, Advance moves the virtual clock and fires due
// timers in deadline order. Deterministic by construction.
type Manual struct {
	now    time.Time
	queue  []func()
	timers []*manualTimer
	nextID int
}

type manualTimer struct {
	id       int
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManual starts the virtual clock at a fixed, arbitrary instant.
func NewManual() *Manual {
	return &Manual{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *Manual) Defer(fn func()) {
	m.queue = append(m.queue, fn)
}

func (m *Manual) After(d time.Duration, fn func()) Timer {
	m.nextID++
	t := &manualTimer{id: m.nextID, deadline: m.now.Add(d), fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Now() time.Time {
	return m.now
}

// Pump drains the deferred queue, including work deferred by the callbacks
// themselves, until the queue is empty.
func (m *Manual) Pump() {
	for len(m.queue) > 0 {
		batch := m.queue
		m.queue = nil
		for _, fn := range batch {
			fn()
		}
	}
}

// Advance moves the clock forward by d, firing every timer whose deadline is
// reached, in deadline order (submission order breaks ties). Each fired timer
// is followed by a Pump so deferred work scheduled by the timer runs before
// the next timer fires.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.dueBefore(target)
		if next == nil {
			break
		}
		m.now = next.deadline
		next.fn()
		m.Pump()
	}
	m.now = target
	m.Pump()
}

// dueBefore pops the earliest unstopped timer with deadline <= target.
func (m *Manual) dueBefore(target time.Time) *manualTimer {
	live := m.timers[:0]
	var due []*manualTimer
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		if !t.deadline.After(target) {
			due = append(due, t)
			continue
		}
		live = append(live, t)
	}
	m.timers = live

	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	// re-queue all but the earliest; they fire on the next iteration
	m.timers = append(m.timers, due[1:]...)
	return due[0]
}
