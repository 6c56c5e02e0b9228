package timer

// The mutations below return an error only when name does not match an
// event. Non-positive magnitudes and calls that do not apply to the event's
// current state are silent no-ops. Any change marks the forecast stale.

// Extend adds seconds to an event's duration. An event that completed
// because its old duration ran out is reopened, and a completed timer
// resumes. Force-completed events stay completed. Dependents that have
// already started are not rolled back.
func (t *Timer) Extend(name string, seconds int64) error {
	ev, err := t.lookup(name)
	if err != nil || seconds <= 0 {
		return err
	}

	ev.duration += seconds
	t.forecasted = false

	if ev.state == StateCompleted && !ev.forced && ev.elapsed < ev.duration {
		ev.state = StateInProgress
		ev.completedTime = nil
		if t.state == StateCompleted {
			t.state = StateInProgress
		}
	}
	return nil
}

// Reduce removes seconds from an event's duration, never going below the
// time it has already run. Hitting that floor completes a running or paused
// event at the current clock. A PENDING or WAITING event has run for zero
// seconds, so its duration drops to 0 and it completes one tick after it
// starts.
func (t *Timer) Reduce(name string, seconds int64) error {
	ev, err := t.lookup(name)
	if err != nil || seconds <= 0 || ev.state == StateCompleted {
		return err
	}

	t.forecasted = false
	if target := ev.duration - seconds; target > ev.elapsed {
		ev.duration = target
		return nil
	}

	if ev.duration > ev.elapsed {
		ev.duration = ev.elapsed
	}
	if ev.state == StateInProgress || ev.state == StatePaused {
		t.completeNow(ev)
	}
	return nil
}

// ForceComplete ends a running, paused or waiting event at the current clock
// regardless of its remaining duration. Pending events are left alone since
// their dependencies have not finished.
func (t *Timer) ForceComplete(name string) error {
	ev, err := t.lookup(name)
	if err != nil {
		return err
	}
	switch ev.state {
	case StateInProgress, StatePaused, StateWaiting:
	default:
		return nil
	}

	if ev.startTime == nil {
		ev.start(t.clock)
	}
	ev.forced = true
	t.forecasted = false
	t.completeNow(ev)
	return nil
}

// TogglePause pauses an in-progress event or resumes a paused one.
func (t *Timer) TogglePause(name string) error {
	ev, err := t.lookup(name)
	if err != nil {
		return err
	}
	switch ev.state {
	case StateInProgress:
		ev.state = StatePaused
	case StatePaused:
		ev.state = StateInProgress
	default:
		return nil
	}
	t.forecasted = false
	return nil
}

// completeNow finishes ev at the current clock and releases its dependents
// as a natural completion during this tick would have.
func (t *Timer) completeNow(ev *Event) {
	ev.complete(t.clock)
	if t.state == StateInProgress {
		t.release()
	}
	t.checkCompleted()
}
