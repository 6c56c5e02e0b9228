package server

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/RichTeaMan/timer/component"
	"github.com/RichTeaMan/timer/observability"
)

const componentName = "http-server"

var systemPaths = map[string]bool{
	"/health":  true,
	"/info":    true,
	"/metrics": true,
}

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// Component runs a Server under the component registry.
type Component struct {
	server *Server
}

// NewComponent wraps s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start binds and serves.
func (c *Component) Start(ctx context.Context) error { return c.server.Start(ctx) }

// Stop shuts the server down.
func (c *Component) Stop(ctx context.Context) error { return c.server.Stop(ctx) }

// Health is up while the listener is bound.
func (c *Component) Health(_ context.Context) observability.Health {
	if !c.server.Listening() {
		return observability.Health{
			Name:    componentName,
			Status:  observability.HealthStatusDown,
			Message: "not listening",
		}
	}
	return observability.Health{
		Name:    componentName,
		Status:  observability.HealthStatusUp,
		Message: c.server.Addr(),
	}
}

// Describe returns the startup summary line.
func (c *Component) Describe() component.Description {
	cfg := c.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s h2c", cfg.Addr()),
	}
}

// Routes lists the Gin routes with application routes first, then the
// built-in ones.
func (c *Component) Routes() []component.Route {
	gr := c.server.engine.Routes()
	sort.Slice(gr, func(i, j int) bool {
		iSys, jSys := systemPaths[gr[i].Path], systemPaths[gr[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if gr[i].Path != gr[j].Path {
			return gr[i].Path < gr[j].Path
		}
		return methodOrder(gr[i].Method) < methodOrder(gr[j].Method)
	})

	routes := make([]component.Route, 0, len(gr))
	for _, r := range gr {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handlerName(r.Handler),
		})
	}
	return routes
}

// handlerName shortens Gin's handler names:
// "github.com/RichTeaMan/timer/api.(*Handler).ListTimers-fm" becomes
// "Handler.ListTimers" and "…/endpoint.Health.func1" becomes "health".
func handlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	if len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		for i := len(parts) - 2; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}
	// drop the package qualifier
	if len(parts) > 1 && strings.ToLower(parts[0]) == parts[0] {
		return strings.Join(parts[1:], ".")
	}
	return name
}

func methodOrder(method string) int {
	for i, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		if m == method {
			return i
		}
	}
	return 5
}
