package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/timer"
	"github.com/RichTeaMan/timer/validation"
)

// Format is a definition file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Decode parses and validates a definition.
func Decode(data []byte, format Format) (*timer.Definition, error) {
	var def timer.Definition
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.InvalidFormat("definition", "JSON timer definition").WithCause(err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, errors.InvalidFormat("definition", "YAML timer definition").WithCause(err)
		}
	default:
		return nil, errors.InvalidInput("format", fmt.Sprintf("unsupported definition format %q", format))
	}

	if err := Check(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Check validates a definition's fields. Graph shape (duplicates, unknown
// dependencies, cycles) is left to timer.Build.
func Check(def *timer.Definition) error {
	return validation.Validate(def)
}

// Encode renders a definition in the given format.
func Encode(def *timer.Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatYAML:
		return yaml.Marshal(def)
	}
	return nil, errors.InvalidInput("format", fmt.Sprintf("unsupported definition format %q", format))
}

// clone deep-copies a definition so registry entries cannot be mutated by callers.
func clone(def *timer.Definition) *timer.Definition {
	out := &timer.Definition{Name: def.Name, Events: make([]timer.EventDefinition, len(def.Events))}
	for i, ed := range def.Events {
		ed.Dependencies = append([]string(nil), ed.Dependencies...)
		out.Events[i] = ed
	}
	return out
}
