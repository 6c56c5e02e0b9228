package component

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/observability"
)

// StopTimeout bounds each component's Stop call.
const StopTimeout = 10 * time.Second

type slot struct {
	Component
	running bool
}

// Registry starts components in registration order and stops them in
// reverse.
type Registry struct {
	mu    sync.RWMutex
	slots []*slot
	log   *logger.Logger
}

func NewRegistry() *Registry {
	return &Registry{log: logger.Get("component")}
}

func (r *Registry) find(name string) *slot {
	i := slices.IndexFunc(r.slots, func(s *slot) bool { return s.Name() == name })
	if i < 0 {
		return nil
	}
	return r.slots[i]
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(c.Name()) != nil {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.slots = append(r.slots, &slot{Component: c})
	r.log.Debug("component registered", logger.Fields(logger.FieldComponent, c.Name()))
	return nil
}

// StartAll starts every component. If one fails, those already running are
// stopped again and the failure is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("starting components", logger.Fields("count", len(r.slots)))
	for _, s := range r.slots {
		if err := s.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.Fields(logger.FieldComponent, s.Name(), logger.FieldError, err.Error()))
			_ = r.stopRunning(context.WithoutCancel(ctx))
			return fmt.Errorf("failed to start %s: %w", s.Name(), err)
		}
		s.running = true
	}
	return nil
}

// StopAll stops every running component, last registered first, giving
// each up to StopTimeout. All stop errors are returned joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("stopping components")
	return r.stopRunning(ctx)
}

func (r *Registry) stopRunning(ctx context.Context) error {
	var errs []error
	for _, s := range slices.Backward(r.slots) {
		if !s.running {
			continue
		}
		s.running = false
		if err := stopWithin(ctx, s); err != nil {
			r.log.Error("component stop failed", logger.Fields(logger.FieldComponent, s.Name(), logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func stopWithin(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, StopTimeout)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll collects the health of every component under service.
func (r *Registry) HealthAll(ctx context.Context, service, version string) *observability.ServiceHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sh := observability.NewServiceHealth(service, version)
	for _, s := range r.slots {
		sh.AddComponent(s.Health(ctx))
	}
	return sh
}

// Get returns the named component, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s := r.find(name); s != nil {
		return s.Component
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.Component
	}
	return out
}

// Summarize adds every Describable component and RouteProvider route to s.
func (r *Registry) Summarize(s *logger.Summary) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sl := range r.slots {
		if d, ok := sl.Component.(Describable); ok {
			desc := d.Describe()
			status := "inactive"
			if sl.running {
				status = "active"
			}
			s.AddComponent(logger.SummaryComponent{
				Name:    cmp.Or(desc.Name, sl.Name()),
				Type:    desc.Type,
				Status:  status,
				Details: desc.Details,
			})
		}
		if rp, ok := sl.Component.(RouteProvider); ok {
			for _, route := range rp.Routes() {
				s.AddRoute(route.Method, route.Path, route.Handler)
			}
		}
	}
}
