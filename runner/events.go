package runner

import (
	"time"

	"github.com/RichTeaMan/timer/timer"
)

// EventType names what a runner event reports.
type EventType string

const (
	EventTick       EventType = "tick"
	EventTransition EventType = "transition"
	EventForecast   EventType = "forecast"
	EventCompleted  EventType = "completed"
	EventMutation   EventType = "mutation"
)

// Event is published to subscribers. ClockSeconds is the timer clock when
// the event was emitted. Tick, forecast, completed and mutation
// events carry a snapshot. Transition events carry the event name and the
// states it moved between. Mutation events name the operation in Op.
type Event struct {
	Type         EventType       `json:"type"`
	RunID        string          `json:"runId"`
	At           time.Time       `json:"at"`
	ClockSeconds int64           `json:"clockSeconds"`
	Snapshot     *timer.Snapshot `json:"snapshot,omitempty"`
	Event        string          `json:"event,omitempty"`
	From         timer.State     `json:"from,omitempty"`
	To           timer.State     `json:"to,omitempty"`
	Op           string          `json:"op,omitempty"`
	Seconds      int64           `json:"seconds,omitempty"`
}
