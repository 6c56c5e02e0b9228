package timer

import (
	"math/rand"
	"strings"
	"testing"
)

func TestProgress_FirstTickStartsRoots(t *testing.T) {
	tm := MustBuild(diamond())
	tm.Progress()

	if tm.State() != StateInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", tm.State())
	}
	if tm.ClockSeconds() != 1 {
		t.Errorf("expected clock 1, got %d", tm.ClockSeconds())
	}
	root := mustEvent(t, tm, "step-1")
	if root.State() != StateInProgress {
		t.Errorf("expected root IN_PROGRESS, got %s", root.State())
	}
	if at := startOf(t, tm, "step-1"); at != 0 {
		t.Errorf("expected root to start at 0, got %d", at)
	}
	if root.ElapsedSeconds() != 1 {
		t.Errorf("expected 1 elapsed second, got %d", root.ElapsedSeconds())
	}
	if s := mustEvent(t, tm, "step-2").State(); s != StatePending {
		t.Errorf("expected dependent PENDING, got %s", s)
	}
}

func TestProgress_SingleNodeWithDelay(t *testing.T) {
	tm := MustBuild(def("single", delayed("only", "10", "5")))

	tm.Progress()
	if at := startOf(t, tm, "only"); at != 0 {
		t.Errorf("expected root to ignore its delay and start at 0, got %d", at)
	}
	runToCompletion(t, tm)
	if at := completedOf(t, tm, "only"); at != 10 {
		t.Errorf("expected completion at 10, got %d", at)
	}
	if tm.ClockSeconds() != 10 {
		t.Errorf("expected clock 10, got %d", tm.ClockSeconds())
	}
}

func TestProgress_Diamond(t *testing.T) {
	tm := MustBuild(diamond())
	runToCompletion(t, tm)

	s2, s3 := completedOf(t, tm, "step-2"), completedOf(t, tm, "step-3")
	s4 := startOf(t, tm, "step-4")
	if s4 < s2 || s4 < s3 {
		t.Errorf("step-4 started at %d before step-2 (%d) and step-3 (%d) completed", s4, s2, s3)
	}
	if completedOf(t, tm, "step-1") != 3600 {
		t.Errorf("expected step-1 to complete at 3600, got %d", completedOf(t, tm, "step-1"))
	}
	if s2 != 3900 || s3 != 3900 {
		t.Errorf("expected step-2 and step-3 to complete at 3900, got %d and %d", s2, s3)
	}
	// a zero-length event still occupies the tick after it starts
	if tm.ClockSeconds() != 3901 {
		t.Errorf("expected total 3901, got %d", tm.ClockSeconds())
	}
}

func TestProgress_ChainTakesOneHourTenMinutes(t *testing.T) {
	tm := MustBuild(chain())
	runToCompletion(t, tm)

	if at := completedOf(t, tm, "step-3"); at != 4200 {
		t.Errorf("expected step-3 to complete at 4200, got %d", at)
	}
	if got := tm.ClockString(); got != "1 hour, 10 minutes" {
		t.Errorf("expected 1 hour, 10 minutes, got %q", got)
	}
	if startOf(t, tm, "step-4") < completedOf(t, tm, "step-3") {
		t.Error("step-4 started before step-3 completed")
	}
}

func TestProgress_StartDelay(t *testing.T) {
	tm := MustBuild(def("t", ev("a", "10"), delayed("b", "20", "30", "a")))

	tm.ProgressDelta(10)
	b := mustEvent(t, tm, "b")
	if b.State() != StateWaiting {
		t.Fatalf("expected b WAITING once a completes, got %s", b.State())
	}
	tm.ProgressDelta(29)
	if b.State() != StateWaiting {
		t.Errorf("expected b still WAITING at 39, got %s", b.State())
	}
	if b.ElapsedDelaySeconds() != 29 {
		t.Errorf("expected 29 delay seconds, got %d", b.ElapsedDelaySeconds())
	}
	tm.Progress()
	if at := startOf(t, tm, "b"); at != 40 {
		t.Errorf("expected b to start at 40, got %d", at)
	}
	runToCompletion(t, tm)
	if at := completedOf(t, tm, "b"); at != 60 {
		t.Errorf("expected b to complete at 60, got %d", at)
	}
}

func TestProgress_NonPositiveDelayStartsImmediately(t *testing.T) {
	tm := MustBuild(def("t", ev("a", "10"), delayed("b", "5", "-30", "a")))
	tm.ProgressDelta(10)
	if s := mustEvent(t, tm, "b").State(); s != StateInProgress {
		t.Fatalf("expected b IN_PROGRESS, got %s", s)
	}
	if at := startOf(t, tm, "b"); at != 10 {
		t.Errorf("expected b to start at 10, got %d", at)
	}
}

func TestProgress_CompletedIsNoOp(t *testing.T) {
	tm := MustBuild(def("t", ev("a", "3")))
	runToCompletion(t, tm)
	tm.Progress()
	tm.ProgressDelta(100)
	if tm.ClockSeconds() != 3 {
		t.Errorf("expected clock to stay at 3, got %d", tm.ClockSeconds())
	}
}

func TestProgressDelta_StopsAtCompletion(t *testing.T) {
	tm := MustBuild(def("t", ev("a", "3")))
	tm.ProgressDelta(50)
	if tm.State() != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", tm.State())
	}
	if tm.ClockSeconds() != 3 {
		t.Errorf("expected clock 3, got %d", tm.ClockSeconds())
	}
}

func TestProgress_Convergence(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		tm := MustBuild(randomDefinition(r, 1+r.Intn(40)))
		runToCompletion(t, tm)

		var latest int64
		for _, e := range tm.Events() {
			if e.State() != StateCompleted {
				t.Fatalf("%s: event %q not completed", tm.Name(), e.Name())
			}
			if at, _ := e.CompletedTime(); at > latest {
				latest = at
			}
		}
		if tm.ClockSeconds() != latest {
			t.Errorf("%s: clock %d != latest completion %d", tm.Name(), tm.ClockSeconds(), latest)
		}
	}
}

func TestProgress_GatingHolds(t *testing.T) {
	tm := MustBuild(dinner())
	runToCompletion(t, tm)
	for _, e := range tm.Events() {
		start := startOf(t, tm, e.Name())
		for _, dep := range e.Dependencies() {
			if done := completedOf(t, tm, dep); start < done {
				t.Errorf("%q started at %d before dependency %q completed at %d", e.Name(), start, dep, done)
			}
		}
	}
}

func TestReset(t *testing.T) {
	tm := MustBuild(diamond())
	tm.ProgressDelta(4000)
	if err := tm.Extend("step-1", 60); err != nil {
		t.Fatal(err)
	}
	tm.Reset()

	if tm.State() != StatePending || tm.ClockSeconds() != 0 {
		t.Fatalf("expected PENDING at 0, got %s at %d", tm.State(), tm.ClockSeconds())
	}
	for _, e := range tm.Events() {
		if e.State() != StatePending || e.ElapsedSeconds() != 0 || e.ElapsedDelaySeconds() != 0 {
			t.Errorf("event %q not reset: %s elapsed=%d", e.Name(), e.State(), e.ElapsedSeconds())
		}
		if _, ok := e.StartTime(); ok {
			t.Errorf("event %q kept its start time", e.Name())
		}
	}
	if d := mustEvent(t, tm, "step-1").DurationSeconds(); d != 3600 {
		t.Errorf("expected built duration 3600, got %d", d)
	}
	if tm.Forecasted() {
		t.Error("expected Reset to mark the forecast stale")
	}

	tm.Forecast()
	runToCompletion(t, tm)
	if tm.ClockSeconds() != tm.ExpectedTotalSeconds() {
		t.Errorf("expected %d after reset, got %d", tm.ExpectedTotalSeconds(), tm.ClockSeconds())
	}
}

func TestEvent_Accessors(t *testing.T) {
	tm := MustBuild(diamond())
	tm.ProgressDelta(600)

	e := mustEvent(t, tm, "step-1")
	if e.RemainingSeconds() != 3000 {
		t.Errorf("expected 3000 remaining, got %d", e.RemainingSeconds())
	}
	if got := e.RemainingString(); got != "50 minutes" {
		t.Errorf("unexpected remaining string %q", got)
	}
	if got := e.DurationString(); got != "1 hour" {
		t.Errorf("unexpected duration string %q", got)
	}
	if e.CompletedString() != "" {
		t.Error("expected empty completed string while running")
	}
	if !e.IsRoot() {
		t.Error("expected step-1 to be a root")
	}
	if got := tm.EventsIn(StatePending); len(got) != 3 {
		t.Errorf("expected 3 pending events, got %d", len(got))
	}
	if len(tm.Roots()) != 1 {
		t.Errorf("expected 1 root, got %d", len(tm.Roots()))
	}
	if _, ok := tm.Event("missing"); ok {
		t.Error("expected missing event lookup to fail")
	}

	tm.ProgressDelta(3000)
	if got := e.CompletedString(); got != "1 hour" {
		t.Errorf("unexpected completed string %q", got)
	}
	if e.RemainingSeconds() != 0 {
		t.Errorf("expected 0 remaining once completed, got %d", e.RemainingSeconds())
	}
}

func TestEvent_String(t *testing.T) {
	tm := MustBuild(diamond())
	out := mustEvent(t, tm, "step-2").String()
	for _, want := range []string{
		"step-2\n",
		"Dependencies:\n        step-1\n",
		"Dependents:\n        step-4\n",
		"Current progress: 0 seconds",
		"Duration: 300 seconds",
		"Start delay: 0 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestEvents_ReturnsCopy(t *testing.T) {
	tm := MustBuild(diamond())
	events := tm.Events()
	events[0] = nil
	if tm.Events()[0] == nil {
		t.Error("Events should not expose the internal slice")
	}
}
