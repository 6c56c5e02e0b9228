package timer

import (
	"fmt"
	"math/rand"
	"testing"
)

func ev(name, dur string, deps ...string) EventDefinition {
	return EventDefinition{Name: name, Duration: dur, Dependencies: deps}
}

func delayed(name, dur, delay string, deps ...string) EventDefinition {
	return EventDefinition{Name: name, Duration: dur, StartDelay: delay, Dependencies: deps}
}

func def(name string, events ...EventDefinition) Definition {
	return Definition{Name: name, Events: events}
}

func diamond() Definition {
	return def("diamond",
		ev("step-1", "1:00:00"),
		ev("step-2", "5:00", "step-1"),
		ev("step-3", "5:00", "step-1"),
		ev("step-4", "0", "step-2", "step-3"),
	)
}

func chain() Definition {
	return def("chain",
		ev("step-1", "1:00:00"),
		ev("step-2", "5:00", "step-1"),
		ev("step-3", "5:00", "step-2"),
		ev("step-4", "0", "step-2", "step-3"),
	)
}

func dinner() Definition {
	return def("Christmas dinner",
		EventDefinition{Name: "Preheat oven", Duration: "15:00"},
		EventDefinition{Name: "Roast turkey", Duration: "3:00:00", Dependencies: []string{"Preheat oven"}},
		EventDefinition{Name: "Rest turkey", Duration: "30:00", Dependencies: []string{"Roast turkey"}},
		EventDefinition{Name: "Peel potatoes", Duration: "20:00"},
		EventDefinition{Name: "Parboil potatoes", Duration: "10:00", Dependencies: []string{"Peel potatoes"}},
		EventDefinition{Name: "Roast potatoes", Duration: "50:00", StartDelay: "5:00", Dependencies: []string{"Parboil potatoes", "Roast turkey"}},
		EventDefinition{Name: "Make gravy", Duration: "10:00", Dependencies: []string{"Rest turkey"}},
		EventDefinition{Name: "Steam sprouts", Duration: "8:00", StartDelay: "12:00", Dependencies: []string{"Roast turkey"}},
		EventDefinition{Name: "Serve", Duration: "0", Dependencies: []string{"Make gravy", "Roast potatoes", "Steam sprouts"}},
	)
}

// randomDefinition builds an acyclic definition where each event may only
// depend on events declared before it.
func randomDefinition(r *rand.Rand, n int) Definition {
	d := Definition{Name: fmt.Sprintf("random-%d", n)}
	for i := 0; i < n; i++ {
		e := EventDefinition{
			Name:     fmt.Sprintf("e%d", i),
			Duration: fmt.Sprint(r.Intn(400)),
		}
		if r.Intn(3) == 0 {
			e.StartDelay = fmt.Sprint(r.Intn(60))
		}
		if r.Intn(10) == 0 {
			e.StartDelay = fmt.Sprint(-r.Intn(10))
		}
		if i > 0 && r.Intn(5) != 0 {
			for k := 0; k < 1+r.Intn(3); k++ {
				e.Dependencies = append(e.Dependencies, fmt.Sprintf("e%d", r.Intn(i)))
			}
		}
		d.Events = append(d.Events, e)
	}
	return d
}

// maxTestTicks stops runToCompletion on a timer that never finishes.
const maxTestTicks = 5_000_000

// runToCompletion ticks t one second at a time.
func runToCompletion(t *testing.T, tm *Timer) {
	t.Helper()
	for i := int64(0); tm.State() != StateCompleted; i++ {
		if i > maxTestTicks {
			t.Fatalf("timer %q did not complete", tm.Name())
		}
		tm.Progress()
	}
}

func mustEvent(t *testing.T, tm *Timer, name string) *Event {
	t.Helper()
	e, ok := tm.Event(name)
	if !ok {
		t.Fatalf("event %q not found", name)
	}
	return e
}

func startOf(t *testing.T, tm *Timer, name string) int64 {
	t.Helper()
	at, ok := mustEvent(t, tm, name).StartTime()
	if !ok {
		t.Fatalf("event %q has not started", name)
	}
	return at
}

func completedOf(t *testing.T, tm *Timer, name string) int64 {
	t.Helper()
	at, ok := mustEvent(t, tm, name).CompletedTime()
	if !ok {
		t.Fatalf("event %q has not completed", name)
	}
	return at
}
