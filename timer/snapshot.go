package timer

import "github.com/RichTeaMan/timer/duration"

// EventView is a read-only copy of an event's state.
type EventView struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	State                 State    `json:"state"`
	DurationSeconds       int64    `json:"durationSeconds"`
	ElapsedSeconds        int64    `json:"elapsedSeconds"`
	RemainingSeconds      int64    `json:"remainingSeconds"`
	StartDelaySeconds     int64    `json:"startDelaySeconds"`
	ElapsedDelaySeconds   int64    `json:"elapsedDelaySeconds"`
	StartTime             *int64   `json:"startTime,omitempty"`
	CompletedTime         *int64   `json:"completedTime,omitempty"`
	ForceCompleted        bool     `json:"forceCompleted,omitempty"`
	ExpectedStartTime     int64    `json:"expectedStartTime"`
	ExpectedCompletedTime int64    `json:"expectedCompletedTime"`
	Dependencies          []string `json:"dependencies"`
	Dependents            []string `json:"dependents"`
	Duration              string   `json:"duration"`
	Remaining             string   `json:"remaining"`
	Completed             string   `json:"completed,omitempty"`
}

// Snapshot is an immutable, JSON-friendly copy of a timer.
type Snapshot struct {
	Name                 string      `json:"name"`
	State                State       `json:"state"`
	ClockSeconds         int64       `json:"clockSeconds"`
	Clock                string      `json:"clock"`
	ExpectedTotalSeconds int64       `json:"expectedTotalSeconds"`
	ExpectedTotal        string      `json:"expectedTotal"`
	Forecasted           bool        `json:"forecasted"`
	CriticalPath         []string    `json:"criticalPath,omitempty"`
	Events               []EventView `json:"events"`
}

// View copies the event.
func (e *Event) View() EventView {
	return EventView{
		Name:                  e.name,
		Description:           e.description,
		State:                 e.state,
		DurationSeconds:       e.duration,
		ElapsedSeconds:        e.elapsed,
		RemainingSeconds:      e.RemainingSeconds(),
		StartDelaySeconds:     e.startDelay,
		ElapsedDelaySeconds:   e.elapsedDelay,
		StartTime:             copyInstant(e.startTime),
		CompletedTime:         copyInstant(e.completedTime),
		ForceCompleted:        e.forced,
		ExpectedStartTime:     e.expectedStart,
		ExpectedCompletedTime: e.expectedCompleted,
		Dependencies:          e.Dependencies(),
		Dependents:            e.Dependents(),
		Duration:              e.DurationString(),
		Remaining:             e.RemainingString(),
		Completed:             e.CompletedString(),
	}
}

// Snapshot copies the timer and all of its events.
func (t *Timer) Snapshot() Snapshot {
	s := Snapshot{
		Name:                 t.name,
		State:                t.state,
		ClockSeconds:         t.clock,
		Clock:                duration.Format(t.clock),
		ExpectedTotalSeconds: t.expectedTotal,
		ExpectedTotal:        duration.Format(t.expectedTotal),
		Forecasted:           t.forecasted,
		Events:               make([]EventView, len(t.events)),
	}
	for i, ev := range t.events {
		s.Events[i] = ev.View()
	}
	if t.forecasted {
		s.CriticalPath = t.CriticalPath()
	}
	return s
}

// Find returns the view of the named event.
func (s Snapshot) Find(name string) (EventView, bool) {
	for _, ev := range s.Events {
		if ev.Name == name {
			return ev, true
		}
	}
	return EventView{}, false
}

// InState returns the views of the events in the given state.
func (s Snapshot) InState(state State) []EventView {
	var out []EventView
	for _, ev := range s.Events {
		if ev.State == state {
			out = append(out, ev)
		}
	}
	return out
}
