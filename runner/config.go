package runner

import (
	"time"

	"github.com/RichTeaMan/timer/validation"
)

// Config controls how fast runs tick.
type Config struct {
	// TickInterval is the wall time of one simulated second at speed 1.
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
	// Speed divides TickInterval. 60 runs a minute per second.
	Speed float64 `yaml:"speed" mapstructure:"speed"`
	// EventBuffer is the default subscriber channel size.
	EventBuffer int `yaml:"event_buffer" mapstructure:"event_buffer"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.TickInterval == 0 {
		c.TickInterval = time.Second
	}
	if c.Speed == 0 {
		c.Speed = 1
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = 64
	}
}

// Validate checks that the runner can tick.
func (c *Config) Validate() error {
	return validation.New().
		Check(c.TickInterval > 0, "runner.tick_interval", "must be positive").
		Check(c.Speed > 0, "runner.speed", "must be positive").
		Check(c.EventBuffer > 0, "runner.event_buffer", "must be positive").
		Err()
}

// Interval is the wall time between ticks. It never drops below a millisecond.
func (c Config) Interval() time.Duration {
	d := time.Duration(float64(c.TickInterval) / c.Speed)
	return max(d, time.Millisecond)
}
