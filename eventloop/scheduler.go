// Package eventloop runs every page reaction on one logical thread: UI events
// and timer callbacks are serialized by a Loop, and named events are routed to
// handlers through a Dispatcher.
package eventloop

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler is the time source for submittedAt stamps and delayed callbacks.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// ClockScheduler runs callbacks on goroutines driven by a clock.Clock.
type ClockScheduler struct {
	clock clock.Clock
}

// NewClockScheduler wraps c. A nil clock means the real wall clock.
func NewClockScheduler(c clock.Clock) *ClockScheduler {
	if c == nil {
		c = clock.NewClock()
	}
	return &ClockScheduler{clock: c}
}

func (s *ClockScheduler) Now() time.Time {
	return s.clock.Now()
}

func (s *ClockScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &clockTimer{timer: s.clock.NewTimer(d), stop: make(chan struct{})}
	go func() {
		select {
		case <-t.timer.C():
			fn()
		case <-t.stop:
		}
	}()
	return t
}

type clockTimer struct {
	timer clock.Timer
	stop  chan struct{}
	once  sync.Once
}

func (t *clockTimer) Stop() bool {
	stopped := t.timer.Stop()
	t.once.Do(func() { close(t.stop) })
	return stopped
}
