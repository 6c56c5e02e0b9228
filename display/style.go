// Package display renders timers, snapshots and run events for the terminal.
package display

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/timer"
)

var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	BoldCyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldWhite  = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// SetColor turns ANSI colors on or off for every writer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// StateIcon is a one-character marker for an event state.
func StateIcon(s timer.State) string {
	switch s {
	case timer.StateCompleted:
		return Green("✓")
	case timer.StateInProgress:
		return Cyan("●")
	case timer.StatePaused:
		return Yellow("‖")
	case timer.StateWaiting:
		return Yellow("◔")
	default:
		return Dim("◌")
	}
}

// StateLabel is the colored state name.
func StateLabel(s timer.State) string {
	switch s {
	case timer.StateCompleted:
		return Green(s)
	case timer.StateInProgress:
		return BoldCyan(s)
	case timer.StatePaused, timer.StateWaiting:
		return Yellow(s)
	default:
		return Dim(s)
	}
}

// Clock renders seconds as H:MM:SS, with a day prefix past 24 hours.
func Clock(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign, seconds = "-", -seconds
	}
	if seconds >= duration.SecondsPerDay {
		return sign + duration.Canonical(seconds)
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign,
		seconds/duration.SecondsPerHour,
		seconds%duration.SecondsPerHour/duration.SecondsPerMinute,
		seconds%duration.SecondsPerMinute)
}
