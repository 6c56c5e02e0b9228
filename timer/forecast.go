package timer

import "fmt"

// maxForecastSteps bounds the simulation loop. Every step applies at least
// one transition and an event makes at most two timed transitions (delay
// expiry, completion), so a converging graph never needs more.
func maxForecastSteps(events int) int {
	return 2*events + 2
}

// Clone returns a structurally identical timer with entirely separate
// storage. Edges are re-linked by event name.
func (t *Timer) Clone() *Timer {
	c := newTimer(t.name, len(t.events))
	c.state = t.state
	c.clock = t.clock
	c.expectedTotal = t.expectedTotal
	c.forecasted = t.forecasted

	for _, ev := range t.events {
		cp := *ev
		cp.owner = c
		cp.index = len(c.events)
		cp.startTime = copyInstant(ev.startTime)
		cp.completedTime = copyInstant(ev.completedTime)
		cp.dependencies = nil
		cp.dependents = nil
		c.index[cp.name] = cp.index
		c.events = append(c.events, &cp)
	}

	for i, ev := range t.events {
		c.events[i].dependencies = relink(c, t, ev.dependencies)
		c.events[i].dependents = relink(c, t, ev.dependents)
	}
	return c
}

// relink maps src edge indexes onto dst by name.
func relink(dst, src *Timer, indexes []int) []int {
	out := make([]int, len(indexes))
	for i, idx := range indexes {
		name := src.events[idx].name
		j, ok := dst.index[name]
		if !ok {
			panic(fmt.Sprintf("timer: clone of %q has no event %q", src.name, name))
		}
		out[i] = j
	}
	return out
}

// Projection is the outcome of a forecast run.
type Projection struct {
	TotalSeconds int64
	Start        map[string]int64
	Completed    map[string]int64
}

// Project simulates t to completion on a clone and returns the projected
// timings without touching t. ok is false when any event is paused, since a
// paused event has no determinate resume time.
//
// Instead of ticking once per second the simulation jumps the clone forward
// to one tick before the next state change, then ticks once to apply it.
func (t *Timer) Project() (p *Projection, ok bool) {
	if t.Paused() {
		return nil, false
	}

	c := t.Clone()
	c.Progress()
	limit := maxForecastSteps(len(c.events))
	for steps := 0; c.state != StateCompleted; steps++ {
		if steps == limit {
			panic(fmt.Sprintf("timer: forecast of %q did not converge after %d steps at %d seconds", t.name, limit, c.clock))
		}
		c.advance(c.nextStep())
		c.Progress()
	}

	p = &Projection{
		TotalSeconds: c.clock,
		Start:        make(map[string]int64, len(c.events)),
		Completed:    make(map[string]int64, len(c.events)),
	}
	for _, ev := range c.events {
		if ev.startTime != nil {
			p.Start[ev.name] = *ev.startTime
		}
		if ev.completedTime != nil {
			p.Completed[ev.name] = *ev.completedTime
		}
	}
	return p, true
}

// Forecast projects t and stores the expected times on its events. It
// returns false, leaving the previous values untouched, when any event is
// paused.
func (t *Timer) Forecast() bool {
	p, ok := t.Project()
	if !ok {
		return false
	}
	t.apply(p)
	return true
}

func (t *Timer) apply(p *Projection) {
	t.expectedTotal = p.TotalSeconds
	for name, at := range p.Start {
		ev, ok := t.Event(name)
		if !ok {
			panic(fmt.Sprintf("timer: forecast returned unknown event %q", name))
		}
		ev.expectedStart = at
	}
	for name, at := range p.Completed {
		ev, ok := t.Event(name)
		if !ok {
			panic(fmt.Sprintf("timer: forecast returned unknown event %q", name))
		}
		ev.expectedCompleted = at
	}
	t.forecasted = true
}

// nextStep returns how many ticks can be skipped before the next transition.
func (t *Timer) nextStep() int64 {
	step, found := int64(0), false
	for _, ev := range t.events {
		if !ev.state.IsActive() {
			continue
		}
		remaining := ev.duration - ev.elapsed
		if ev.state == StateWaiting {
			remaining = ev.startDelay - ev.elapsedDelay
		}
		if !found || remaining < step {
			step, found = remaining, true
		}
	}
	if !found {
		panic(fmt.Sprintf("timer: forecast of %q stalled at %d seconds with no running or waiting events", t.name, t.clock))
	}
	return max(0, step-1)
}

// advance adds step ticks to every running counter without applying transitions.
func (t *Timer) advance(step int64) {
	if step == 0 {
		return
	}
	for _, ev := range t.events {
		switch ev.state {
		case StateInProgress:
			ev.elapsed += step
		case StateWaiting:
			ev.elapsedDelay += step
		}
	}
	t.clock += step
}

func copyInstant(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func readInstant(p *int64) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
