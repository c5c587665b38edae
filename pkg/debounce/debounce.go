// Package debounce coalesces bursts of calls into a single delayed call.
//
// A Debouncer holds at most one pending task. Each Trigger cancels the
// pending task and schedules a new one to run once the window has passed
// without further triggers. Stop cancels the pending task and disables the
// Debouncer, so work scheduled by an owner that has been torn down never runs.
//
//	d := debounce.New(150 * time.Millisecond)
//	defer d.Stop()
//	for ev := range resizes {
//	    d.Trigger(func() { apply(ev) })
//	}
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used for viewport resize coalescing.
const DefaultWindow = 150 * time.Millisecond

// Debouncer runs the most recently triggered task after a quiet window.
// It is safe for concurrent use.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending func()
	gen     uint64
	stopped bool
}

// New creates a Debouncer. A non-positive window uses DefaultWindow.
func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window}
}

// Window returns the quiet period.
func (d *Debouncer) Window() time.Duration { return d.window }

// Trigger replaces any pending task with fn and restarts the window.
// It is a no-op after Stop.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire runs the pending task if it still belongs to generation gen. A timer
// that fires after being superseded or stopped finds a newer generation (or
// a stopped Debouncer) and does nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()

	fn()
}

// take clears and returns the pending task. d.mu must be held.
func (d *Debouncer) take() func() {
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.gen++
	return fn
}

// Flush runs the pending task immediately on the calling goroutine and
// reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || d.pending == nil {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.take()
	d.mu.Unlock()

	fn()
	return true
}

// Pending reports whether a task is waiting for its window to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Cancel drops the pending task without disabling the Debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.timer = nil
	d.gen++
}

// Stop cancels the pending task and disables the Debouncer. Subsequent
// Triggers are ignored. Stop is idempotent.
func (d *Debouncer) Stop() {
	d.Cancel()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
