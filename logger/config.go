package logger

import (
	"fmt"
	"slices"
)

// Accepted values for Config.
var (
	Levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	Formats = []string{"json", "console", "text", FormatPretty}
	Outputs = []string{"stdout", "stderr", "discard"}
)

// Config selects level, encoding and destination of log output.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults logs info and up, human-readable, to stderr so stdout stays
// free for command output.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	for _, f := range []struct {
		key, value string
		allowed    []string
	}{
		{"logging.level", c.Level, Levels},
		{"logging.format", c.Format, Formats},
		{"logging.output", c.Output, Outputs},
	} {
		if !slices.Contains(f.allowed, f.value) {
			return fmt.Errorf("%s must be one of %v (got: %s)", f.key, f.allowed, f.value)
		}
	}
	return nil
}
