package runner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/component"
	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/observability"
	"github.com/RichTeaMan/timer/timer"
)

// Info summarises a run for listings.
type Info struct {
	ID           string      `json:"id"`
	Key          string      `json:"key,omitempty"`
	Name         string      `json:"name"`
	State        timer.State `json:"state"`
	ClockSeconds int64       `json:"clockSeconds"`
	Clock        string      `json:"clock"`
	Running      bool        `json:"running"`
	Started      time.Time   `json:"started"`
}

type run struct {
	runner *Runner
	key    string
	cancel context.CancelFunc
	done   chan struct{}
	wake   chan struct{}
}

// Manager owns the active runs, keyed by run ID.
type Manager struct {
	mu      sync.Mutex
	runs    map[string]*run
	catalog *catalog.Registry
	cfg     Config
	opts    []Option
	hooks   []func(*Runner)
	log     *logger.Logger
	base    context.Context
	stop    context.CancelFunc
	started bool
}

var (
	_ component.Component   = (*Manager)(nil)
	_ component.Describable = (*Manager)(nil)
)

// NewManager creates a manager that builds timers from reg. opts are
// applied to every runner it creates.
func NewManager(reg *catalog.Registry, cfg Config, opts ...Option) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		runs:    make(map[string]*run),
		catalog: reg,
		cfg:     cfg,
		opts:    opts,
		log:     logger.Get("runner"),
	}
}

// OnLaunch registers fn to be called with each new runner before it starts
// ticking.
func (m *Manager) OnLaunch(fn func(*Runner)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Launch builds the timer registered under key and starts running it.
func (m *Manager) Launch(key string) (*Runner, error) {
	t, err := m.catalog.Build(key)
	if err != nil {
		return nil, err
	}
	return m.launch(key, t)
}

// LaunchDefinition validates def, builds it and starts running it.
func (m *Manager) LaunchDefinition(def timer.Definition) (*Runner, error) {
	if err := catalog.Check(&def); err != nil {
		return nil, err
	}
	t, err := timer.Build(def)
	if err != nil {
		return nil, err
	}
	return m.launch("", t)
}

func (m *Manager) launch(key string, t *timer.Timer) (*Runner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil, errors.ServiceUnavailable("run manager")
	}

	r := New(t, m.cfg, m.opts...)
	for _, hook := range m.hooks {
		hook(r)
	}
	// The first forecast gives subscribers expected times before the first tick.
	r.Forecast(m.base)

	ctx, cancel := context.WithCancel(logger.ContextWithRunID(m.base, r.ID()))
	e := &run{
		runner: r,
		key:    key,
		cancel: cancel,
		done:   make(chan struct{}),
		wake:   make(chan struct{}, 1),
	}
	m.runs[r.ID()] = e
	go m.loop(ctx, e)

	m.log.Info("run launched", logger.Fields(logger.FieldRunID, r.ID(), logger.FieldTimer, t.Name(), "key", key))
	return r, nil
}

// loop keeps a run ticking. A completed run waits to be woken by a
// mutation that reopens it.
func (m *Manager) loop(ctx context.Context, e *run) {
	defer close(e.done)
	for {
		err := e.runner.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			m.log.WithContext(ctx).Error("run failed", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		if !e.runner.State().IsTerminal() {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-e.wake:
		}
	}
}

// Get returns the runner with the given ID.
func (m *Manager) Get(id string) (*Runner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.runs[id]
	if !ok {
		return nil, errors.NotFound("run", id)
	}
	return e.runner, nil
}

// List returns every run, oldest first.
func (m *Manager) List() []Info {
	m.mu.Lock()
	runs := make([]*run, 0, len(m.runs))
	for _, e := range m.runs {
		runs = append(runs, e)
	}
	m.mu.Unlock()

	out := make([]Info, 0, len(runs))
	for _, e := range runs {
		snap := e.runner.Snapshot()
		out = append(out, Info{
			ID:           e.runner.ID(),
			Key:          e.key,
			Name:         snap.Name,
			State:        snap.State,
			ClockSeconds: snap.ClockSeconds,
			Clock:        snap.Clock,
			Running:      e.runner.Running(),
			Started:      e.runner.Started(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

// Mutate applies fn to the run with the given ID and wakes its loop so a
// reopened timer resumes ticking.
func (m *Manager) Mutate(ctx context.Context, id string, fn func(context.Context, *Runner) error) error {
	m.mu.Lock()
	e, ok := m.runs[id]
	m.mu.Unlock()
	if !ok {
		return errors.NotFound("run", id)
	}

	if err := fn(ctx, e.runner); err != nil {
		return err
	}
	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

// StopRun cancels the run, waits for its loop to exit and closes its
// subscribers.
func (m *Manager) StopRun(id string) error {
	m.mu.Lock()
	e, ok := m.runs[id]
	if ok {
		delete(m.runs, id)
	}
	m.mu.Unlock()
	if !ok {
		return errors.NotFound("run", id)
	}

	m.halt(e)
	m.log.Info("run stopped", logger.Fields(logger.FieldRunID, id))
	return nil
}

func (m *Manager) halt(e *run) {
	e.cancel()
	<-e.done
	e.runner.Close()
}

// StopAll stops every run.
func (m *Manager) StopAll() {
	m.mu.Lock()
	runs := m.runs
	m.runs = make(map[string]*run)
	m.mu.Unlock()

	for _, e := range runs {
		m.halt(e)
	}
	if len(runs) > 0 {
		m.log.Info("runs stopped", logger.Fields("count", len(runs)))
	}
}

// Len returns the number of active runs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}

// Name returns the component name.
func (m *Manager) Name() string { return "runs" }

// Start lets the manager accept runs. Runs outlive ctx and end at Stop.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}
	m.base, m.stop = context.WithCancel(context.WithoutCancel(ctx))
	m.started = true
	return nil
}

// Stop stops every run and refuses new ones.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	m.StopAll()
	m.stop()
	return nil
}

// Health is up while the manager accepts runs.
func (m *Manager) Health(_ context.Context) observability.Health {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := observability.HealthStatusUp
	if !m.started {
		status = observability.HealthStatusDown
	}
	return observability.Health{
		Name:    m.Name(),
		Status:  status,
		Message: fmt.Sprintf("%d runs active", len(m.runs)),
	}
}

// Describe returns the startup summary line.
func (m *Manager) Describe() component.Description {
	return component.Description{
		Name:    "Run Manager",
		Type:    "runner",
		Details: fmt.Sprintf("tick %s, speed %gx", m.cfg.TickInterval, m.cfg.Speed),
	}
}
