package timer

import (
	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/util"
)

// Timer owns an arena of events and the master clock.
type Timer struct {
	name   string
	events []*Event
	index  map[string]int

	state         State
	clock         int64
	expectedTotal int64
	forecasted    bool
}

func newTimer(name string, capacity int) *Timer {
	return &Timer{
		name:   name,
		events: make([]*Event, 0, capacity),
		index:  make(map[string]int, capacity),
		state:  StatePending,
	}
}

func (t *Timer) Name() string        { return t.name }
func (t *Timer) State() State        { return t.state }
func (t *Timer) Len() int            { return len(t.events) }
func (t *Timer) ClockSeconds() int64 { return t.clock }

// ClockString formats the elapsed clock for display.
func (t *Timer) ClockString() string { return duration.Format(t.clock) }

// ExpectedTotalSeconds is the forecast completion instant of the whole timer.
func (t *Timer) ExpectedTotalSeconds() int64 { return t.expectedTotal }

// Forecasted reports whether the expected times reflect the current state.
// It is false after any mutation until Forecast succeeds again.
func (t *Timer) Forecasted() bool { return t.forecasted }

// Events returns the events in definition order.
func (t *Timer) Events() []*Event {
	out := make([]*Event, len(t.events))
	copy(out, t.events)
	return out
}

// Event looks up an event by name.
func (t *Timer) Event(name string) (*Event, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.events[i], true
}

// EventsIn returns the events currently in the given state, in definition order.
func (t *Timer) EventsIn(state State) []*Event {
	return util.Filter(t.events, func(ev *Event) bool { return ev.state == state })
}

// Paused reports whether any event is paused.
func (t *Timer) Paused() bool {
	for _, ev := range t.events {
		if ev.state == StatePaused {
			return true
		}
	}
	return false
}

// Progress advances the timer by one tick. The first call starts every root
// event at clock 0. Events that complete during the tick release their
// dependents within the same tick.
func (t *Timer) Progress() {
	if t.state == StateCompleted {
		return
	}
	if t.state == StatePending {
		for _, ev := range t.events {
			if ev.IsRoot() {
				ev.start(t.clock)
			}
		}
		t.state = StateInProgress
	}

	t.clock++
	for _, ev := range t.events {
		switch ev.state {
		case StateInProgress:
			ev.elapsed++
			if ev.elapsed >= ev.duration {
				ev.complete(t.clock)
			}
		case StateWaiting:
			ev.elapsedDelay++
			if ev.elapsedDelay >= ev.startDelay {
				ev.start(t.clock)
			}
		}
	}
	t.release()
	t.checkCompleted()
}

// ProgressDelta calls Progress n times, stopping early once the timer completes.
func (t *Timer) ProgressDelta(n int64) {
	for i := int64(0); i < n && t.state != StateCompleted; i++ {
		t.Progress()
	}
}

// Reset returns every event to PENDING with its built duration and zeroed
// counters, and the timer to clock 0. Expected times are kept but marked stale.
func (t *Timer) Reset() {
	for _, ev := range t.events {
		ev.reset()
	}
	t.state = StatePending
	t.clock = 0
	t.forecasted = false
}

// release moves PENDING events whose dependencies are all complete into
// IN_PROGRESS, or WAITING when they carry a positive start delay.
func (t *Timer) release() {
	for _, ev := range t.events {
		if ev.state != StatePending || !t.dependenciesComplete(ev) {
			continue
		}
		if ev.startDelay <= 0 {
			ev.start(t.clock)
		} else {
			ev.state = StateWaiting
		}
	}
}

func (t *Timer) dependenciesComplete(ev *Event) bool {
	for _, d := range ev.dependencies {
		if t.events[d].state != StateCompleted {
			return false
		}
	}
	return true
}

func (t *Timer) checkCompleted() {
	for _, ev := range t.events {
		if ev.state != StateCompleted {
			return
		}
	}
	t.state = StateCompleted
}

func (t *Timer) names(indexes []int) []string {
	out := make([]string, len(indexes))
	for i, idx := range indexes {
		out[i] = t.events[idx].name
	}
	return out
}

func (t *Timer) lookup(name string) (*Event, error) {
	ev, ok := t.Event(name)
	if !ok {
		return nil, errors.NotFound("event", name).WithDetail("timer", t.name)
	}
	return ev, nil
}
