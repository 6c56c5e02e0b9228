package timer

import (
	"fmt"
	"strings"

	"github.com/RichTeaMan/timer/duration"
)

// Event is a single activity in a Timer. Edges are stored as indexes into
// the owning timer's event slice, so an Event never holds another Event.
type Event struct {
	owner *Timer
	index int

	name        string
	description string
	state       State

	duration        int64
	initialDuration int64
	elapsed         int64
	startDelay      int64
	elapsedDelay    int64

	startTime     *int64
	completedTime *int64
	forced        bool

	expectedStart     int64
	expectedCompleted int64

	dependencies []int
	dependents   []int
}

// Name is the event's unique name within its timer.
func (e *Event) Name() string { return e.name }

// Description is free text shown alongside the name.
func (e *Event) Description() string { return e.description }

// State is the event's current lifecycle state.
func (e *Event) State() State { return e.state }

// DurationSeconds is the current, possibly edited, duration.
func (e *Event) DurationSeconds() int64 { return e.duration }

// ElapsedSeconds counts the ticks spent IN_PROGRESS.
func (e *Event) ElapsedSeconds() int64 { return e.elapsed }

// StartDelaySeconds is how long the event waits after its dependencies finish.
func (e *Event) StartDelaySeconds() int64 { return e.startDelay }

// ElapsedDelaySeconds counts the ticks spent WAITING.
func (e *Event) ElapsedDelaySeconds() int64 { return e.elapsedDelay }

// RemainingSeconds is the duration left to run, never negative.
func (e *Event) RemainingSeconds() int64 {
	if e.state == StateCompleted {
		return 0
	}
	return max(0, e.duration-e.elapsed)
}

// StartTime returns the clock value at which the event entered IN_PROGRESS.
func (e *Event) StartTime() (int64, bool) {
	return readInstant(e.startTime)
}

// CompletedTime returns the clock value at which the event completed.
func (e *Event) CompletedTime() (int64, bool) {
	return readInstant(e.completedTime)
}

// ForceCompleted reports whether the event was ended by ForceComplete.
func (e *Event) ForceCompleted() bool { return e.forced }

// ExpectedStartTime is the forecast start instant. See Timer.Forecasted.
func (e *Event) ExpectedStartTime() int64 { return e.expectedStart }

// ExpectedCompletedTime is the forecast completion instant.
func (e *Event) ExpectedCompletedTime() int64 { return e.expectedCompleted }

// Dependencies returns the names of the events this one waits on.
func (e *Event) Dependencies() []string { return e.owner.names(e.dependencies) }

// Dependents returns the names of the events waiting on this one.
func (e *Event) Dependents() []string { return e.owner.names(e.dependents) }

// IsRoot reports whether the event has no dependencies.
func (e *Event) IsRoot() bool { return len(e.dependencies) == 0 }

// DurationString formats DurationSeconds for display.
func (e *Event) DurationString() string { return duration.Format(e.duration) }

// RemainingString formats RemainingSeconds for display.
func (e *Event) RemainingString() string { return duration.Format(e.RemainingSeconds()) }

// CompletedString formats the completion instant, or returns "" while the
// event is still running.
func (e *Event) CompletedString() string {
	if e.completedTime == nil {
		return ""
	}
	return duration.Format(*e.completedTime)
}

// String dumps the event for debugging and the CLI "show" command.
func (e *Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.name)
	fmt.Fprintf(&b, "    %s\n", e.description)
	b.WriteString("    Dependencies:\n")
	for _, name := range e.Dependencies() {
		fmt.Fprintf(&b, "        %s\n", name)
	}
	b.WriteString("    Dependents:\n")
	for _, name := range e.Dependents() {
		fmt.Fprintf(&b, "        %s\n", name)
	}
	fmt.Fprintf(&b, "    Current progress: %d seconds\n", e.elapsed)
	fmt.Fprintf(&b, "    Duration: %d seconds\n", e.duration)
	fmt.Fprintf(&b, "    Start delay: %d seconds\n", e.startDelay)
	return b.String()
}

func (e *Event) start(clock int64) {
	e.state = StateInProgress
	e.startTime = &clock
}

func (e *Event) complete(clock int64) {
	e.state = StateCompleted
	e.completedTime = &clock
}

func (e *Event) reset() {
	e.state = StatePending
	e.duration = e.initialDuration
	e.elapsed = 0
	e.elapsedDelay = 0
	e.startTime = nil
	e.completedTime = nil
	e.forced = false
}
