// Package timer models a set of named activities joined by finish-to-start
// dependencies and advances them one second per tick until every activity
// has completed.
//
// A Timer is built from a Definition, which validates names, dependencies
// and acyclicity, and is forecast once before Build returns:
//
//	t, err := timer.Build(def)
//	if err != nil {
//	    return err
//	}
//	for t.State() != timer.StateCompleted {
//	    t.Progress()
//	}
//
// Forecast runs the timer to completion on an independent clone, jumping
// straight to the next instant where some event changes state, and copies
// the expected start and completion times back. Mutations (Extend, Reduce,
// ForceComplete, TogglePause) leave the forecast stale until Forecast is
// called again.
//
// A Timer is not safe for concurrent use. Callers that tick it from one
// goroutine and read it from another must serialise access themselves.
package timer
