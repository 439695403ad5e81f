package eventloop_test

import (
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/eventloop/eventlooptest"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestLoopAfterFiresOnce(t *testing.T) {
	sched := eventlooptest.New(epoch)
	loop := eventloop.NewLoop(sched)

	calls := 0
	var h *eventloop.Handle
	loop.Do(func() {
		h = loop.After(100*time.Millisecond, func() { calls++ })
	})

	sched.Advance(50 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("callback ran early")
	}
	sched.Advance(50 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if h.Pending() {
		t.Errorf("handle still pending after firing")
	}
	sched.Flush()
	if calls != 1 {
		t.Errorf("calls after flush = %d, want 1", calls)
	}
}

func TestLoopCancelPreventsCallback(t *testing.T) {
	sched := eventlooptest.New(epoch)
	loop := eventloop.NewLoop(sched)

	ran := false
	loop.Do(func() {
		h := loop.After(time.Second, func() { ran = true })
		h.Cancel()
	})
	sched.Flush()
	if ran {
		t.Fatal("cancelled callback ran")
	}

	var nilHandle *eventloop.Handle
	nilHandle.Cancel()
	if nilHandle.Pending() {
		t.Error("nil handle reports pending")
	}
}

func TestDispatcherOrder(t *testing.T) {
	d := eventloop.NewDispatcher()
	var got []string
	d.On(eventloop.EventClick, func(ev eventloop.Event) { got = append(got, "first:"+ev.Target) })
	d.On(eventloop.EventClick, func(ev eventloop.Event) { got = append(got, "second:"+ev.Target) })
	d.On(eventloop.EventInput, func(ev eventloop.Event) { got = append(got, "input") })

	d.Emit(eventloop.Event{Name: eventloop.EventClick, Target: "load-more"})

	if len(got) != 2 || got[0] != "first:load-more" || got[1] != "second:load-more" {
		t.Fatalf("handlers ran as %v", got)
	}
	if d.Bindings(eventloop.EventClick) != 2 {
		t.Errorf("Bindings(click) = %d, want 2", d.Bindings(eventloop.EventClick))
	}
	d.Emit(eventloop.Event{Name: "unbound"})
}

func TestClockSchedulerUsesClock(t *testing.T) {
	clock := fakeclock.NewFakeClock(epoch)
	sched := eventloop.NewClockScheduler(clock)

	if !sched.Now().Equal(epoch) {
		t.Fatalf("Now = %v, want %v", sched.Now(), epoch)
	}

	fired := make(chan struct{})
	sched.AfterFunc(time.Second, func() { close(fired) })
	stopped := sched.AfterFunc(time.Second, func() { t.Error("stopped timer fired") })
	stopped.Stop()

	clock.Increment(time.Second)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire after the clock advanced")
	}
}
