package pokefans

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

// SubmitLimiter rate-limits form submissions per client IP.
type SubmitLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	clock    clock.Clock
	stop     chan struct{}
	once     sync.Once
}

// NewSubmitLimiter creates a SubmitLimiter that allows max submissions per
// window. A nil clock uses the real one.
func NewSubmitLimiter(max int, window time.Duration, c clock.Clock) *SubmitLimiter {
	if c == nil {
		c = clock.NewClock()
	}
	l := &SubmitLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		clock:    c,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SubmitLimiter) cleanup() {
	ticker := l.clock.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C():
			l.mu.Lock()
			cutoff := l.clock.Now().Add(-l.window)
			for ip := range l.attempts {
				if kept := l.prune(ip, cutoff); len(kept) == 0 {
					delete(l.attempts, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// prune drops attempts older than cutoff. Callers hold l.mu.
func (l *SubmitLimiter) prune(ip string, cutoff time.Time) []time.Time {
	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.attempts[ip] = kept
	return kept
}

// Allow reports whether ip may submit now and, if so, records the attempt.
func (l *SubmitLimiter) Allow(ip string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.prune(ip, now.Add(-l.window))) >= l.max {
		return false
	}
	l.attempts[ip] = append(l.attempts[ip], now)
	return true
}

// Stop ends the background cleanup.
func (l *SubmitLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
