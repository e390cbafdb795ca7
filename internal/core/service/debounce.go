// Package service provides the session snapshot/restore engine.
package service

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single call that runs once
// the triggers have been quiet for the configured delay.
//
// Each Trigger restarts the quiescence window. Calls to fn never overlap.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool

	runMu sync.Mutex
}

// NewDebouncer creates a debouncer calling fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger schedules fn, restarting the window if a call is already pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	d.pending = true
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs a pending call immediately. It reports whether a call ran.
func (d *Debouncer) Flush() bool {
	return d.Claim(d.fn)
}

// Claim takes over a pending call and runs fn in its place. It waits for a
// call already in flight, so fn never overlaps a debounced call. It reports
// whether a call was pending.
func (d *Debouncer) Claim(fn func()) bool {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	fn()
	return true
}

// Cancel drops a pending call. Later triggers schedule again.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels a pending call, ignores further triggers and waits for a
// call in flight to return. It reports whether a call was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	pending := d.pending
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	d.runMu.Lock()
	defer d.runMu.Unlock()
	return pending
}

func (d *Debouncer) cancelLocked() {
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	// A newer trigger, a claim or a stop superseded this timer.
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()

	d.fn()
}
