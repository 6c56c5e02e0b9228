package timer

// State is the lifecycle state of an event or of the timer as a whole.
type State string

const (
	// StatePending means the event is waiting on its dependencies, or the
	// timer has not been ticked yet.
	StatePending State = "PENDING"
	// StateWaiting means all dependencies are complete and the start delay
	// is counting down.
	StateWaiting State = "WAITING"
	// StateInProgress means the event is accruing elapsed time.
	StateInProgress State = "IN_PROGRESS"
	// StateCompleted is terminal for normal operation.
	StateCompleted State = "COMPLETED"
	// StatePaused means an in-progress event has been held by the caller.
	StatePaused State = "PAUSED"
)

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }

// IsTerminal reports whether no further ticks change the state.
func (s State) IsTerminal() bool { return s == StateCompleted }

// IsActive reports whether the state is one the forecast can step over.
func (s State) IsActive() bool { return s == StateInProgress || s == StateWaiting }
