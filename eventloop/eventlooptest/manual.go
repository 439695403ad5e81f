// Package eventlooptest provides a deterministic scheduler for tests.
package eventlooptest

import (
	"sort"
	"sync"
	"time"

	"github.com/eringen/pokefans/eventloop"
)

// Scheduler fires callbacks only when the test advances time.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*timer
}

type timer struct {
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

func (t *timer) Stop() bool {
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

// New returns a scheduler whose clock starts at now.
func New(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) eventloop.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Pending counts timers that have neither fired nor been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback that falls due
// in order, including callbacks scheduled by callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now.Add(d)
	s.mu.Unlock()
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		t.fn()
	}
	s.mu.Lock()
	s.now = end
	s.mu.Unlock()
}

// Flush fires everything that is pending, however far in the future.
func (s *Scheduler) Flush() {
	for s.Pending() > 0 {
		s.Advance(time.Hour)
	}
}

func (s *Scheduler) next(end time.Time) *timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.Slice(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})
	if len(s.timers) == 0 || s.timers[0].due.After(end) {
		return nil
	}
	t := s.timers[0]
	t.stopped = true
	if t.due.After(s.now) {
		s.now = t.due
	}
	return t
}
