package timer

import (
	"slices"

	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/errors"
)

// Build validates def and returns a PENDING timer with expected times
// already forecast. No partial timer is returned on error.
//
// Errors are AppErrors with one of the codes MISSING_FIELD, INVALID_FORMAT,
// DUPLICATE_NAME, UNKNOWN_DEPENDENCY, NO_ROOT or CYCLIC_DEPENDENCY.
func Build(def Definition) (*Timer, error) {
	t := newTimer(def.Name, len(def.Events))

	for _, ed := range def.Events {
		if err := t.addEvent(ed); err != nil {
			return nil, err
		}
	}
	if err := t.link(def.Events); err != nil {
		return nil, err
	}
	if len(t.Roots()) == 0 {
		return nil, errors.NoRoot(def.Name)
	}
	if err := t.checkCycles(); err != nil {
		return nil, err
	}

	t.Forecast()
	return t, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// embedded definitions known to be valid.
func MustBuild(def Definition) *Timer {
	t, err := Build(def)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Timer) addEvent(ed EventDefinition) error {
	if ed.Name == "" {
		return errors.MissingField("name").WithDetail("timer", t.name)
	}
	dur, err := duration.Parse(ed.Duration)
	if err != nil {
		return withEvent(err, ed.Name, "duration")
	}
	delay, err := duration.Parse(ed.StartDelay)
	if err != nil {
		return withEvent(err, ed.Name, "startDelay")
	}
	if _, dup := t.index[ed.Name]; dup {
		return errors.DuplicateName(ed.Name)
	}

	ev := &Event{
		owner:           t,
		index:           len(t.events),
		name:            ed.Name,
		description:     ed.Description,
		state:           StatePending,
		duration:        dur,
		initialDuration: dur,
		startDelay:      delay,
	}
	t.index[ev.name] = ev.index
	t.events = append(t.events, ev)
	return nil
}

// link wires both edge directions. Repeated dependency names collapse to one edge.
func (t *Timer) link(defs []EventDefinition) error {
	for _, ed := range defs {
		ev := t.events[t.index[ed.Name]]
		for _, depName := range ed.Dependencies {
			d, ok := t.index[depName]
			if !ok {
				return errors.UnknownDependency(depName, ed.Name)
			}
			if slices.Contains(ev.dependencies, d) {
				continue
			}
			ev.dependencies = append(ev.dependencies, d)
			t.events[d].dependents = append(t.events[d].dependents, ev.index)
		}
	}
	return nil
}

// Roots returns the events with no dependencies.
func (t *Timer) Roots() []*Event {
	var roots []*Event
	for _, ev := range t.events {
		if ev.IsRoot() {
			roots = append(roots, ev)
		}
	}
	return roots
}

// checkCycles walks every dependency path reachable from each event and
// fails on the first event that can reach itself.
func (t *Timer) checkCycles() error {
	for _, ev := range t.events {
		if path := t.cycleThrough(ev.index); path != nil {
			return errors.CyclicDependency(ev.name, t.names(path))
		}
	}
	return nil
}

// cycleThrough returns origin -> ... -> origin if origin lies on a cycle.
// Each event is expanded at most once per call, so cycles that do not pass
// through origin cannot trap the walk.
func (t *Timer) cycleThrough(origin int) []int {
	visited := make([]bool, len(t.events))
	path := []int{origin}

	var walk func(i int) bool
	walk = func(i int) bool {
		for _, d := range t.events[i].dependencies {
			if d == origin {
				path = append(path, d)
				return true
			}
			if visited[d] {
				continue
			}
			visited[d] = true
			path = append(path, d)
			if walk(d) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}

	if walk(origin) {
		return path
	}
	return nil
}

func withEvent(err error, event, field string) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithDetails(map[string]any{"event": event, "field": field})
	}
	return err
}
