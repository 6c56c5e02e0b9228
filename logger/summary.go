package logger

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Summary collects what a process started so it can be logged once startup
// is done.
type Summary struct {
	mu         sync.Mutex
	started    time.Time
	components []SummaryComponent
	routes     []SummaryRoute
}

// SummaryComponent is one started component: the hub, run manager or
// HTTP server.
type SummaryComponent struct {
	Name    string
	Type    string
	Status  string // "active" or "inactive"
	Details string
}

// SummaryRoute is one mounted HTTP route.
type SummaryRoute struct {
	Method  string
	Path    string
	Handler string
}

// NewSummary starts the startup clock.
func NewSummary() *Summary {
	return &Summary{started: time.Now()}
}

func (s *Summary) Started() time.Time { return s.started }

func (s *Summary) AddComponent(c SummaryComponent) {
	s.mu.Lock()
	s.components = append(s.components, c)
	s.mu.Unlock()
}

func (s *Summary) AddRoute(method, path, handler string) {
	s.mu.Lock()
	s.routes = append(s.routes, SummaryRoute{Method: method, Path: path, Handler: handler})
	s.mu.Unlock()
}

// Components returns the components in the order they were added.
func (s *Summary) Components() []SummaryComponent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.components)
}

// Routes returns the routes sorted by path, then method.
func (s *Summary) Routes() []SummaryRoute {
	s.mu.Lock()
	routes := slices.Clone(s.routes)
	s.mu.Unlock()
	slices.SortStableFunc(routes, func(a, b SummaryRoute) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})
	return routes
}

// Log writes each component at info and each route at debug, then the
// time startup took.
func (s *Summary) Log(l *Logger) {
	for _, c := range s.Components() {
		l.Info(fmt.Sprintf("%s %s", c.Name, c.Status), Fields("type", c.Type, "details", c.Details))
	}
	routes := s.Routes()
	for _, r := range routes {
		l.Debug(fmt.Sprintf("route %-6s %s", r.Method, r.Path), Fields("handler", r.Handler))
	}
	fields := Timed("startup", s.started)
	fields["routes"] = len(routes)
	l.Info("startup complete", fields)
}
