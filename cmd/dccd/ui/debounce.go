// Package ui provides debouncing utilities for event handling
package ui

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid events such as slider nudges into a single
// trailing call. The pending call can be flushed before the page changes.
// Cancel and Flush return only after a call already in flight has finished,
// so they must not be called from inside a debounced function.
type Debouncer struct {
	mu       sync.Mutex
	idle     *sync.Cond // signalled when running drops to zero
	timer    *time.Timer
	pending  func()
	running  int
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	d := &Debouncer{
		duration: duration,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Debounce executes the function after the debounce duration has elapsed
// without any new calls. Rapid successive calls reset the timer.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = fn
	var timer *time.Timer
	timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		if d.timer != timer {
			d.mu.Unlock()
			return
		}
		run := d.pending
		d.pending = nil
		d.timer = nil
		if run == nil {
			d.mu.Unlock()
			return
		}
		d.running++
		d.mu.Unlock()

		d.call(run)
	})
	d.timer = timer
}

// call runs fn outside the lock and wakes waiters when nothing is running.
func (d *Debouncer) call(fn func()) {
	defer func() {
		d.mu.Lock()
		d.running--
		if d.running == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	fn()
}

// waitIdleLocked blocks until no debounced call is running. d.mu must be held.
func (d *Debouncer) waitIdleLocked() {
	for d.running > 0 {
		d.idle.Wait()
	}
}

// Cancel drops any pending call and waits for one already running.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.waitIdleLocked()
}

// Flush runs the pending call now, if any, and reports whether it ran.
// A call already in flight finishes first.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	run := d.pending
	d.pending = nil
	d.waitIdleLocked()
	if run == nil {
		d.mu.Unlock()
		return false
	}
	d.running++
	d.mu.Unlock()

	d.call(run)
	return true
}

// Pending reports whether a call is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// DefaultSaveDelay is how long slider input settles before the session is written.
const DefaultSaveDelay = 300 * time.Millisecond
