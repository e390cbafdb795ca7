package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDebouncer_Coalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
	}
	if !d.Pending() {
		t.Error("Pending() = false after Trigger")
	}

	waitFor(t, func() bool { return calls.Load() > 0 })
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after firing")
	}
}

func TestDebouncer_TriggerRestartsWindow(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(80*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	d.Trigger()
	time.Sleep(50 * time.Millisecond)

	// 90ms after the first trigger, but only 50ms after the second.
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d before the window closed", got)
	}
	waitFor(t, func() bool { return calls.Load() == 1 })
}

func TestDebouncer_Flush(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(time.Hour, func() { calls.Add(1) })

	if d.Flush() {
		t.Error("Flush() = true with nothing pending")
	}

	d.Trigger()
	if !d.Flush() {
		t.Error("Flush() = false with a pending call")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if d.Flush() {
		t.Error("second Flush() ran again")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d after Cancel", got)
	}

	d.Trigger()
	waitFor(t, func() bool { return calls.Load() == 1 })
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d after Stop", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestDebouncer_StopReportsPending(t *testing.T) {
	d := NewDebouncer(time.Hour, func() {})

	if d.Stop() {
		t.Error("Stop() = true with nothing pending")
	}

	d = NewDebouncer(time.Hour, func() {})
	d.Trigger()
	if !d.Stop() {
		t.Error("Stop() = false with a pending call")
	}
}

func TestDebouncer_StopWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	d := NewDebouncer(time.Millisecond, func() {
		close(started)
		<-release
		finished.Store(true)
	})

	d.Trigger()
	<-started

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop() returned while the call was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-stopped
	if !finished.Load() {
		t.Error("call did not finish before Stop() returned")
	}
}

func TestDebouncer_Claim(t *testing.T) {
	var calls, claimed atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })

	if d.Claim(func() { claimed.Add(1) }) {
		t.Error("Claim() = true with nothing pending")
	}

	d.Trigger()
	if !d.Claim(func() { claimed.Add(1) }) {
		t.Error("Claim() = false with a pending call")
	}
	time.Sleep(60 * time.Millisecond)

	if got := claimed.Load(); got != 1 {
		t.Errorf("claimed = %d, want 1", got)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want the debounced call replaced", got)
	}
}

func TestDebouncer_ClaimWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var running, overlapped atomic.Bool
	d := NewDebouncer(time.Millisecond, func() {
		running.Store(true)
		close(started)
		<-release
		running.Store(false)
	})

	d.Trigger()
	<-started

	done := make(chan struct{})
	go func() {
		d.Claim(func() {
			if running.Load() {
				overlapped.Store(true)
			}
		})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Claim() returned while the call was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	if overlapped.Load() {
		t.Error("claimed call overlapped the running call")
	}
}
