package sse

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RichTeaMan/timer/component"
	"github.com/RichTeaMan/timer/observability"
)

// Component runs a Hub under the component registry. A stopped hub cannot
// be restarted.
type Component struct {
	hub     *Hub
	route   string
	once    sync.Once
	started atomic.Bool
	exited  chan struct{}
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent wraps a fresh Hub. route names the stream endpoint in the
// startup summary.
func NewComponent(route string) *Component {
	return &Component{hub: NewHub(), route: route, exited: make(chan struct{})}
}

func (c *Component) Hub() *Hub { return c.hub }

func (c *Component) Name() string { return "sse" }

// Start launches the routing loop. Later calls do nothing.
func (c *Component) Start(context.Context) error {
	c.once.Do(func() {
		c.started.Store(true)
		go func() {
			defer close(c.exited)
			c.hub.Run()
		}()
	})
	return nil
}

// Stop closes every client and waits for the loop to exit, or for ctx.
func (c *Component) Stop(ctx context.Context) error {
	c.hub.Stop()
	if !c.started.Load() {
		return nil
	}
	select {
	case <-c.exited:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sse hub did not stop: %w", ctx.Err())
	}
}

func (c *Component) running() bool {
	if !c.started.Load() {
		return false
	}
	select {
	case <-c.exited:
		return false
	default:
		return true
	}
}

// Health is up while the loop runs and reports the connected client count.
func (c *Component) Health(context.Context) observability.Health {
	status := observability.HealthStatusDown
	if c.running() {
		status = observability.HealthStatusUp
	}
	return observability.Health{
		Name:    c.Name(),
		Status:  status,
		Message: fmt.Sprintf("%d clients connected", c.hub.ClientCount()),
	}
}

func (c *Component) Describe() component.Description {
	return component.Description{Name: "SSE Hub", Type: "sse", Details: "Route: " + c.route}
}
