package liquidglass

import (
	"testing"
	"time"
)

// testScheduler wires a Scheduler to a manual clock and captured timers so
// throttling is fully deterministic.
type testScheduler struct {
	s     *Scheduler
	now   time.Time
	runs  int
	fires []func()
	delay time.Duration
}

func newTestScheduler(interval time.Duration) *testScheduler {
	ts := &testScheduler{now: time.Unix(1000, 0)}
	ts.s = NewScheduler(interval, func() { ts.runs++ })
	ts.s.now = func() time.Time { return ts.now }
	ts.s.after = func(d time.Duration, f func()) *time.Timer {
		ts.delay = d
		ts.fires = append(ts.fires, f)
		return time.NewTimer(time.Hour)
	}
	return ts
}

// fire pops and invokes the oldest captured timer callback.
func (ts *testScheduler) fire() {
	f := ts.fires[0]
	ts.fires = ts.fires[1:]
	f()
}

func TestSchedulerFirstRequestRunsImmediately(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	if ts.runs != 1 {
		t.Fatalf("runs = %d, want 1", ts.runs)
	}
	if ts.s.Pending() {
		t.Error("no retry should be pending after an immediate run")
	}
}

func TestSchedulerCoalescesBurst(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request() // runs immediately, opens the window

	// Burst within the window: one pending retry, no further runs.
	for i := 0; i < 4; i++ {
		ts.now = ts.now.Add(4 * time.Millisecond)
		ts.s.Request()
	}
	if ts.runs != 1 {
		t.Fatalf("runs = %d, want 1 during throttle window", ts.runs)
	}
	if len(ts.fires) != 1 {
		t.Fatalf("scheduled %d timers, want exactly 1", len(ts.fires))
	}
	if !ts.s.Pending() {
		t.Error("a trailing retry should be pending")
	}
	// Scheduled for the remainder of the window from the first throttled call.
	if ts.delay != 12*time.Millisecond {
		t.Errorf("retry delay = %v, want 12ms", ts.delay)
	}

	// Window elapses; the retry runs exactly once.
	ts.now = ts.now.Add(4 * time.Millisecond)
	ts.fire()
	if ts.runs != 2 {
		t.Fatalf("runs = %d after retry, want 2", ts.runs)
	}
	if ts.s.Pending() {
		t.Error("retry should clear the pending slot")
	}
}

func TestSchedulerRunsAgainAfterWindow(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	ts.now = ts.now.Add(16 * time.Millisecond)
	ts.s.Request()
	if ts.runs != 2 {
		t.Fatalf("runs = %d, want 2 across separate windows", ts.runs)
	}
}

func TestSchedulerForceBypassesThrottle(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	ts.s.Force()
	ts.s.Force()
	if ts.runs != 3 {
		t.Fatalf("runs = %d, want 3 (two forced)", ts.runs)
	}
}

func TestSchedulerForceCancelsPendingRetry(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	ts.now = ts.now.Add(4 * time.Millisecond)
	ts.s.Request() // pending retry
	if !ts.s.Pending() {
		t.Fatal("expected pending retry")
	}

	ts.s.Force()
	if ts.s.Pending() {
		t.Error("Force should cancel the pending retry")
	}
	if ts.runs != 2 {
		t.Fatalf("runs = %d, want 2", ts.runs)
	}

	// Force restamps the window: an immediate request throttles again.
	ts.s.Request()
	if ts.runs != 2 {
		t.Error("request right after Force should be throttled")
	}
}

func TestSchedulerClose(t *testing.T) {
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	ts.now = ts.now.Add(4 * time.Millisecond)
	ts.s.Request() // pending retry

	ts.s.Close()
	if ts.s.Pending() {
		t.Error("Close should cancel the pending retry")
	}

	// A timer callback that raced Close is discarded.
	ts.fire()
	ts.s.Request()
	ts.s.Force()
	if ts.runs != 1 {
		t.Fatalf("runs = %d after Close, want 1", ts.runs)
	}

	ts.s.Close() // idempotent
}

func TestSchedulerRetryReentersThrottleCheck(t *testing.T) {
	// The deferred retry re-checks elapsed time rather than running blindly.
	ts := newTestScheduler(16 * time.Millisecond)
	ts.s.Request()
	ts.now = ts.now.Add(4 * time.Millisecond)
	ts.s.Request()

	// Fire the retry after the window has elapsed: it runs.
	ts.now = ts.now.Add(12 * time.Millisecond)
	ts.fire()
	if ts.runs != 2 {
		t.Fatalf("runs = %d, want 2", ts.runs)
	}
}

func TestSchedulerDefaultInterval(t *testing.T) {
	s := NewScheduler(0, func() {})
	if s.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", s.interval, DefaultInterval)
	}
}
