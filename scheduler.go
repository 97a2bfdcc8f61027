package liquidglass

import (
	"sync"
	"time"
)

// DefaultInterval is the stock throttle window: one recomputation per frame
// at a 60 Hz target.
const DefaultInterval = 16 * time.Millisecond

// Scheduler throttles recomputation requests to at most one run per
// interval, with trailing-edge coalescing: a burst of requests inside one
// window schedules exactly one deferred run at the window's end, which picks
// up whatever state exists when it fires.
//
// Request and Force are safe for concurrent use; the run callback executes
// synchronously on whichever goroutine triggers it (the caller's, or the
// timer's for a deferred retry).
type Scheduler struct {
	mu      sync.Mutex
	interval time.Duration
	last    time.Time
	pending *time.Timer
	closed  bool
	run     func()

	// Injectable for deterministic tests.
	now   func() time.Time
	after func(time.Duration, func()) *time.Timer
}

// NewScheduler creates a Scheduler that invokes run for each completed
// update. A non-positive interval falls back to [DefaultInterval].
func NewScheduler(interval time.Duration, run func()) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		run:      run,
		now:      time.Now,
		after:    time.AfterFunc,
	}
}

// Request asks for a recomputation. If the throttle window has elapsed the
// run happens immediately; otherwise a single deferred retry is scheduled
// for the remainder of the window. Further requests while a retry is
// pending are no-ops.
func (s *Scheduler) Request() {
	s.mu.Lock()
	if s.closed || s.pending != nil {
		s.mu.Unlock()
		return
	}
	now := s.now()
	if elapsed := now.Sub(s.last); elapsed < s.interval {
		s.pending = s.after(s.interval-elapsed, s.retry)
		s.mu.Unlock()
		return
	}
	s.last = now
	s.mu.Unlock()
	s.run()
}

// Force runs immediately, bypassing the throttle. Any pending deferred retry
// is cancelled — its inputs would be staler than the forced run's. The
// throttle window restarts from now.
func (s *Scheduler) Force() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.last = s.now()
	s.mu.Unlock()
	s.run()
}

// Close cancels any pending retry and makes all further requests no-ops.
// A timer callback that has already fired but not yet entered the scheduler
// is discarded on entry; the run callback is never invoked after Close
// returns on the closing goroutine's view of the state.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// Pending reports whether a deferred retry is currently scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// retry is the deferred-timer entry point: it clears the pending slot and
// re-enters Request, which re-checks the elapsed window.
func (s *Scheduler) retry() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()
	s.Request()
}
