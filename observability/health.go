package observability

import "slices"

// HealthStatus is the state of a component or of the whole service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
)

// severity orders statuses from best to worst. Unknown values rank as down.
var severity = []HealthStatus{HealthStatusUp, HealthStatusDegraded, HealthStatusDown}

func (s HealthStatus) rank() int {
	if i := slices.Index(severity, s); i >= 0 {
		return i
	}
	return len(severity) - 1
}

// Worse returns whichever of s and other is more severe.
func (s HealthStatus) Worse(other HealthStatus) HealthStatus {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// Health describes one component.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth is the /health body. Its status is the worst status of its
// components.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)
	sh.Status = sh.Status.Worse(h.Status)
}

// Healthy is false only when the service is down. Degraded still serves.
func (sh *ServiceHealth) Healthy() bool {
	return sh.Status.rank() < HealthStatusDown.rank()
}

// NotUp lists the components reporting anything but up.
func (sh *ServiceHealth) NotUp() []Health {
	var out []Health
	for _, h := range sh.Components {
		if h.Status != HealthStatusUp {
			out = append(out, h)
		}
	}
	return out
}
