// Package counter animates displayed integers toward a target value.
package counter

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/ui"
)

const (
	DefaultSteps    = 20
	DefaultInterval = 50 * time.Millisecond
)

// Animator owns at most one running animation per counter element.
type Animator struct {
	loop     *eventloop.Loop
	surface  *ui.Surface
	steps    int
	interval time.Duration

	shown  map[string]int
	timers map[string]*eventloop.Handle
}

// New returns an Animator with the given frame count and frame interval.
// Non-positive values fall back to the defaults.
func New(loop *eventloop.Loop, surface *ui.Surface, steps int, interval time.Duration) *Animator {
	if steps <= 0 {
		steps = DefaultSteps
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Animator{
		loop:     loop,
		surface:  surface,
		steps:    steps,
		interval: interval,
		shown:    make(map[string]int),
		timers:   make(map[string]*eventloop.Handle),
	}
}

// Shown returns the value currently displayed by the counter id.
func (a *Animator) Shown(id string) int {
	return a.shown[id]
}

// Running reports whether id has an animation in flight.
func (a *Animator) Running(id string) bool {
	return a.timers[id].Pending()
}

// AnimateTo moves counter id from current to target over the configured
// frames, flooring each intermediate value and ending exactly on target. Any
// animation already running for id is cancelled first.
func (a *Animator) AnimateTo(id string, current, target int) {
	a.timers[id].Cancel()
	delete(a.timers, id)

	a.set(id, current)
	if current == target {
		return
	}
	a.frame(id, current, target, 1)
}

func (a *Animator) frame(id string, from, target, step int) {
	a.timers[id] = a.loop.After(a.interval, func() {
		if step >= a.steps {
			a.set(id, target)
			delete(a.timers, id)
			return
		}
		progress := float64(step) / float64(a.steps)
		a.set(id, from+int(math.Floor(float64(target-from)*progress)))
		a.frame(id, from, target, step+1)
	})
}

func (a *Animator) set(id string, v int) {
	a.shown[id] = v
	a.surface.Get(id).SetText(humanize.Comma(int64(v)))
}
