package component

import (
	"context"

	"github.com/RichTeaMan/timer/observability"
)

// Component is a part of the process with a start and stop. Start must
// return once the component is serving; long-running work belongs in a
// goroutine that Stop ends.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) observability.Health
}

// Description is how a component presents itself in the startup summary.
// An empty Name falls back to Component.Name.
type Description struct {
	Name    string
	Type    string
	Details string
}

// Describable components appear in the startup summary.
type Describable interface {
	Describe() Description
}

// Route is one HTTP route listed in the startup summary.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider components list their routes in the startup summary.
type RouteProvider interface {
	Routes() []Route
}
