package observability

import (
	"fmt"
	"time"

	"github.com/RichTeaMan/timer/validation"
)

// Config enables and points the OTLP exporters.
type Config struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure    bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate  float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
}

// ApplyDefaults fills unset fields for a local collector.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// Validate checks ranges.
func (c *Config) Validate() error {
	return validation.New().
		Check(c.SampleRate >= 0 && c.SampleRate <= 1, "observability.sample_rate",
			fmt.Sprintf("must be between 0 and 1 (got: %v)", c.SampleRate)).
		NonNegative("observability.interval", c.Interval).
		Err()
}
