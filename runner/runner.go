package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/observability"
	"github.com/RichTeaMan/timer/timer"
)

// TickSource returns a channel that delivers ticks every interval and a
// func that stops it.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

// RealTicks is the default TickSource, backed by time.Ticker.
func RealTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithMetrics records ticks, transitions, forecasts and mutations.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithID sets the run ID. A random UUID is used otherwise.
func WithID(id string) Option {
	return func(r *Runner) { r.id = id }
}

// WithClock replaces the tick source.
func WithClock(src TickSource) Option {
	return func(r *Runner) { r.ticks = src }
}

// Runner ticks one timer in real time and publishes what happens.
type Runner struct {
	mu          sync.Mutex
	id          string
	timer       *timer.Timer
	cfg         Config
	log         *logger.Logger
	metrics     *observability.Metrics
	ticks       TickSource
	subscribers []chan Event
	running     bool
	closed      bool
	started     time.Time
}

// New creates a runner for t. cfg is defaulted but not validated.
func New(t *timer.Timer, cfg Config, opts ...Option) *Runner {
	cfg.ApplyDefaults()
	r := &Runner{
		id:      uuid.NewString(),
		timer:   t,
		cfg:     cfg,
		ticks:   RealTicks,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("runner")
	}
	r.log = r.log.WithFields(logger.Fields(logger.FieldRunID, r.id, logger.FieldTimer, t.Name()))
	return r
}

// ID returns the run ID.
func (r *Runner) ID() string { return r.id }

// Name returns the timer name.
func (r *Runner) Name() string { return r.timer.Name() }

// Started returns when the runner was created.
func (r *Runner) Started() time.Time { return r.started }

// Config returns the runner's config.
func (r *Runner) Config() Config { return r.cfg }

// Running reports whether Run is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Snapshot copies the timer's current state.
func (r *Runner) Snapshot() timer.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Snapshot()
}

// State returns the timer's state.
func (r *Runner) State() timer.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.State()
}

// Subscribe returns a channel of events and a func that unsubscribes and
// closes it. A buffer of 0 or less uses the configured EventBuffer. Events
// are dropped for subscribers whose buffer is full.
func (r *Runner) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = r.cfg.EventBuffer
	}
	ch := make(chan Event, buffer)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		close(ch)
		return ch, func() {}
	}
	r.subscribers = append(r.subscribers, ch)

	var once sync.Once
	return ch, func() {
		once.Do(func() { r.unsubscribe(ch) })
	}
}

func (r *Runner) unsubscribe(ch chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes every subscriber channel. Later mutations return CONFLICT.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
}

// Run ticks the timer until it completes (returning nil) or ctx is done
// (returning ctx.Err()). Only one Run may be active at a time.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return r.stoppedErr()
	}
	if r.running {
		r.mu.Unlock()
		return errors.Conflict(fmt.Sprintf("run %s is already ticking", r.id))
	}
	r.running = true
	r.mu.Unlock()

	r.metrics.RunStarted(ctx)
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		r.metrics.RunEnded(context.WithoutCancel(ctx))
	}()

	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
	span.SetAttributes(
		attribute.String(observability.AttrRunID, r.id),
		attribute.String(observability.AttrTimer, r.timer.Name()),
	)
	defer span.End()

	if r.State().IsTerminal() {
		return nil
	}

	interval := r.cfg.Interval()
	ticks, stop := r.ticks(interval)
	defer stop()
	r.log.Info("run started", logger.Fields("interval", interval.String()))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("run stopped", logger.Fields(logger.FieldClock, r.Snapshot().ClockSeconds))
			return ctx.Err()
		case <-ticks:
			if r.Tick(ctx) {
				return nil
			}
		}
	}
}

// Tick advances the timer one second and publishes the result. It returns
// true once the timer is complete.
func (r *Runner) Tick(ctx context.Context) bool {
	ctx, span := observability.StartSpan(ctx, observability.SpanTick)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer.State().IsTerminal() {
		return true
	}

	before := r.statesLocked()
	r.timer.Progress()
	r.metrics.RecordTick(ctx, r.timer.Name())
	span.SetAttributes(attribute.Int64(observability.AttrClock, r.timer.ClockSeconds()))

	now := time.Now()
	r.publishTransitionsLocked(ctx, before, now)
	snap := r.timer.Snapshot()
	r.emitLocked(Event{Type: EventTick, At: now, Snapshot: &snap})

	if r.timer.State().IsTerminal() {
		r.emitLocked(Event{Type: EventCompleted, At: now, Snapshot: &snap})
		r.log.Info("run completed", logger.Fields(logger.FieldClock, snap.ClockSeconds, "elapsed", snap.Clock))
		return true
	}
	return false
}

// Forecast recomputes expected times and publishes a forecast event. It
// returns false when a paused event prevented the forecast.
func (r *Runner) Forecast(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forecastLocked(ctx)
}

func (r *Runner) forecastLocked(ctx context.Context) bool {
	ctx, span := observability.StartSpan(ctx, observability.SpanForecast)
	defer span.End()

	start := time.Now()
	ok := r.timer.Forecast()
	r.metrics.RecordForecast(ctx, r.timer.Name(), ok, time.Since(start))
	span.SetAttributes(
		attribute.Bool("forecasted", ok),
		attribute.Int64("expected_total_seconds", r.timer.ExpectedTotalSeconds()),
	)

	snap := r.timer.Snapshot()
	r.emitLocked(Event{Type: EventForecast, At: time.Now(), Snapshot: &snap})
	if !ok {
		r.log.Debug("forecast skipped while paused")
	}
	return ok
}

// Extend adds seconds to the named event's duration.
func (r *Runner) Extend(ctx context.Context, name string, seconds int64) error {
	return r.mutate(ctx, "extend", name, seconds, func(t *timer.Timer) error {
		return t.Extend(name, seconds)
	})
}

// Reduce removes seconds from the named event's duration.
func (r *Runner) Reduce(ctx context.Context, name string, seconds int64) error {
	return r.mutate(ctx, "reduce", name, seconds, func(t *timer.Timer) error {
		return t.Reduce(name, seconds)
	})
}

// ForceComplete completes the named event now.
func (r *Runner) ForceComplete(ctx context.Context, name string) error {
	return r.mutate(ctx, "complete", name, 0, func(t *timer.Timer) error {
		return t.ForceComplete(name)
	})
}

// TogglePause pauses or resumes the named event.
func (r *Runner) TogglePause(ctx context.Context, name string) error {
	return r.mutate(ctx, "pause", name, 0, func(t *timer.Timer) error {
		return t.TogglePause(name)
	})
}

// Restart returns the timer to its built state.
func (r *Runner) Restart(ctx context.Context) error {
	return r.mutate(ctx, "restart", "", 0, func(t *timer.Timer) error {
		t.Reset()
		return nil
	})
}

// mutate applies fn under the lock, publishes the resulting transitions and
// a mutation event, then re-forecasts.
func (r *Runner) mutate(ctx context.Context, op, name string, seconds int64, fn func(*timer.Timer) error) (err error) {
	oc := observability.NewOperationContext(op, r.id, r.timer.Name(), name, r.metrics)
	ctx, span := oc.Start(ctx)
	defer func() { oc.End(ctx, span, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.stoppedErr()
	}

	before := r.statesLocked()
	if err := fn(r.timer); err != nil {
		r.log.WithContext(ctx).Debug("mutation rejected", logger.Fields(logger.FieldOperation, op, logger.FieldEvent, name, logger.FieldError, err.Error()))
		return err
	}

	now := time.Now()
	r.publishTransitionsLocked(ctx, before, now)
	snap := r.timer.Snapshot()
	r.emitLocked(Event{Type: EventMutation, At: now, Snapshot: &snap, Event: name, Op: op, Seconds: seconds})
	r.forecastLocked(ctx)

	r.log.WithContext(ctx).Info("mutation applied", logger.Fields(logger.FieldOperation, op, logger.FieldEvent, name, logger.FieldSeconds, seconds))
	return nil
}

func (r *Runner) stoppedErr() error {
	return errors.Conflict(fmt.Sprintf("run %s has been stopped", r.id)).WithDetail("run_id", r.id)
}

func (r *Runner) statesLocked() []timer.State {
	events := r.timer.Events()
	states := make([]timer.State, len(events))
	for i, ev := range events {
		states[i] = ev.State()
	}
	return states
}

func (r *Runner) publishTransitionsLocked(ctx context.Context, before []timer.State, at time.Time) {
	for i, ev := range r.timer.Events() {
		if ev.State() == before[i] {
			continue
		}
		r.metrics.RecordTransition(ctx, r.timer.Name(), string(before[i]), string(ev.State()))
		r.log.Debug("event transition", logger.Fields(
			logger.FieldEvent, ev.Name(),
			"from", before[i],
			"to", ev.State(),
			logger.FieldClock, r.timer.ClockSeconds(),
		))
		r.emitLocked(Event{Type: EventTransition, At: at, Event: ev.Name(), From: before[i], To: ev.State()})
	}
}

// emitLocked delivers e to every subscriber that has room.
func (r *Runner) emitLocked(e Event) {
	e.RunID = r.id
	e.ClockSeconds = r.timer.ClockSeconds()
	for _, ch := range r.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}
