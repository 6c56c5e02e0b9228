package timer

// Definition describes a timer and its events. It decodes from JSON or YAML.
type Definition struct {
	Name   string            `json:"name" yaml:"name" validate:"required"`
	Events []EventDefinition `json:"events" yaml:"events" validate:"required,min=1,dive"`
}

// EventDefinition describes a single event. Duration and StartDelay use the
// [[[D:]H:]M:]S grammar understood by the duration package.
type EventDefinition struct {
	Name         string   `json:"name" yaml:"name" validate:"required"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Duration     string   `json:"duration" yaml:"duration" validate:"duration"`
	StartDelay   string   `json:"startDelay,omitempty" yaml:"startDelay,omitempty" validate:"duration"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}
