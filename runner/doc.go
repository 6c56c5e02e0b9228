// Package runner drives timers in real time.
//
// A Runner owns one *timer.Timer. Run ticks it once per interval until every
// event completes, and each tick is published to subscribers as a tick event
// plus one transition event per event that changed state. Edits (extend,
// reduce, force-complete, pause, restart) go through the runner's mutex and
// are followed immediately by a fresh forecast, so the next snapshot
// carries updated expectations.
//
// A Manager keeps several runs by ID and is registered as a component for
// the serve command.
package runner
