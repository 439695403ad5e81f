package eventloop

import (
	"sync"
	"time"
)

// Loop serializes reactions. Everything that touches page state runs inside
// Do, either directly for UI events or through After for timers, so no two
// reactions ever interleave.
//
// Do is not reentrant: code already running inside the loop must not call it.
type Loop struct {
	mu    sync.Mutex
	sched Scheduler
}

// NewLoop returns a Loop whose timers come from sched.
func NewLoop(sched Scheduler) *Loop {
	return &Loop{sched: sched}
}

// Do runs fn with exclusive access to loop-owned state.
func (l *Loop) Do(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// Now reports the scheduler's current time.
func (l *Loop) Now() time.Time {
	return l.sched.Now()
}

// After schedules fn to run inside the loop once d has elapsed. It must be
// called from inside the loop.
func (l *Loop) After(d time.Duration, fn func()) *Handle {
	h := &Handle{}
	h.timer = l.sched.AfterFunc(d, func() {
		l.Do(func() {
			if h.cancelled || h.fired {
				return
			}
			h.fired = true
			fn()
		})
	})
	return h
}

// Handle is a timer registered through Loop.After. Its fields are only
// touched from inside the loop.
type Handle struct {
	timer     Timer
	cancelled bool
	fired     bool
}

// Cancel prevents the callback from running if it has not run yet. It is
// safe on a nil Handle.
func (h *Handle) Cancel() {
	if h == nil || h.cancelled {
		return
	}
	h.cancelled = true
	if h.timer != nil {
		h.timer.Stop()
	}
}

// Pending reports whether the callback is still due.
func (h *Handle) Pending() bool {
	return h != nil && !h.cancelled && !h.fired
}
