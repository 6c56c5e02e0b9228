package display

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/timer"
)

const nameWidth = 28

// PrintTimers lists catalog entries.
func PrintTimers(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, Dim("no timers registered"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %-24s %s\n", BoldWhite(e.Key), e.Name)
	}
}

// PrintSnapshot writes a header line and one line per event.
func PrintSnapshot(w io.Writer, s timer.Snapshot) {
	fmt.Fprintf(w, "%s %s %s %s",
		BoldCyan("⏱"), Bold(s.Name), Dim("—"), StateLabel(s.State))
	fmt.Fprintf(w, "  %s %s", Dim("clock"), Clock(s.ClockSeconds))
	if s.Forecasted {
		fmt.Fprintf(w, " %s %s", Dim("of"), Clock(s.ExpectedTotalSeconds))
	} else {
		fmt.Fprintf(w, " %s", Yellow("(forecast paused)"))
	}
	fmt.Fprintln(w)

	for _, ev := range s.Events {
		printEvent(w, ev, slices.Contains(s.CriticalPath, ev.Name))
	}
}

func printEvent(w io.Writer, ev timer.EventView, critical bool) {
	marker := " "
	if critical {
		marker = BoldYellow("⚡")
	}

	var detail string
	switch ev.State {
	case timer.StateCompleted:
		at := int64(0)
		if ev.CompletedTime != nil {
			at = *ev.CompletedTime
		}
		detail = Green(fmt.Sprintf("done at %s", Clock(at)))
		if ev.ForceCompleted {
			detail += Dim(" (forced)")
		}
	case timer.StateInProgress, timer.StatePaused:
		detail = fmt.Sprintf("%s left of %s", Clock(ev.RemainingSeconds), Clock(ev.DurationSeconds))
	case timer.StateWaiting:
		detail = Yellow(fmt.Sprintf("starts in %s", Clock(ev.StartDelaySeconds-ev.ElapsedDelaySeconds)))
	default:
		detail = Dim(fmt.Sprintf("%s, expected %s → %s",
			Clock(ev.DurationSeconds), Clock(ev.ExpectedStartTime), Clock(ev.ExpectedCompletedTime)))
	}

	fmt.Fprintf(w, "  %s %s %-*s %s\n", StateIcon(ev.State), marker, nameWidth, truncate(ev.Name, nameWidth), detail)
}

// PrintLevels groups events by dependency depth. Critical path events are
// marked.
func PrintLevels(w io.Writer, t *timer.Timer) {
	s := t.Snapshot()
	fmt.Fprintf(w, "%s %s\n", BoldCyan("⏱"), Bold(s.Name))
	if s.Forecasted {
		fmt.Fprintf(w, "  %s %s (%s)\n", Dim("expected total"), Clock(s.ExpectedTotalSeconds), s.ExpectedTotal)
	}

	for i, names := range t.Levels() {
		fmt.Fprintf(w, "\n  %s %d\n", BoldWhite("LEVEL"), i+1)
		for _, name := range names {
			ev, _ := s.Find(name)
			printEvent(w, ev, slices.Contains(s.CriticalPath, name))
			if len(ev.Dependencies) > 0 {
				fmt.Fprintf(w, "      %s %s\n", Dim("after"), Dim(strings.Join(ev.Dependencies, ", ")))
			}
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
