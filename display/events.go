package display

import (
	"fmt"
	"io"

	"github.com/RichTeaMan/timer/runner"
)

// PrintRunEvent writes one line for transition, mutation and completed
// events. Ticks and forecasts are skipped.
func PrintRunEvent(w io.Writer, e runner.Event) {
	stamp := Dim("[" + Clock(e.ClockSeconds) + "]")
	switch e.Type {
	case runner.EventTransition:
		fmt.Fprintf(w, "%s %s %s → %s\n", stamp, Bold(e.Event), StateLabel(e.From), StateLabel(e.To))
	case runner.EventMutation:
		what := e.Op
		if e.Event != "" {
			what += " " + e.Event
		}
		if e.Seconds > 0 {
			what += fmt.Sprintf(" by %s", Clock(e.Seconds))
		}
		fmt.Fprintf(w, "%s %s %s\n", stamp, Yellow("edit"), what)
	case runner.EventCompleted:
		fmt.Fprintf(w, "%s %s\n", stamp, Green("all events complete"))
	}
}
