package server

import (
	"fmt"
	"time"

	"github.com/RichTeaMan/timer/server/middleware"
	"github.com/RichTeaMan/timer/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	// Port 0 picks a free port.
	Port        int `yaml:"port" mapstructure:"port"`
	ReadTimeout int `yaml:"read_timeout" mapstructure:"read_timeout"` // seconds
	// WriteTimeout is 0 by default so run streams are not cut off.
	WriteTimeout int           `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int           `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	MaxBodySize  string        `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "1MB"
	KeepAlive    time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`       // SSE comment interval
	// StreamTickGap is the least wall time between tick frames on a run
	// stream. Fast runs drop the ticks in between.
	StreamTickGap time.Duration         `yaml:"stream_tick_gap" mapstructure:"stream_tick_gap"`
	CORS          middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 15 * time.Second
	}
	if c.StreamTickGap == 0 {
		c.StreamTickGap = 250 * time.Millisecond
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID}
	}
}

// Validate checks ranges.
func (c *Config) Validate() error {
	return validation.New().
		Check(c.Port >= 0 && c.Port <= 65535, "server.port", fmt.Sprintf("must be between 0 and 65535 (got: %d)", c.Port)).
		Check(c.ReadTimeout >= 0, "server.read_timeout", "must be non-negative").
		Check(c.WriteTimeout >= 0, "server.write_timeout", "must be non-negative").
		Check(c.IdleTimeout >= 0, "server.idle_timeout", "must be non-negative").
		NonNegative("server.keep_alive", c.KeepAlive).
		NonNegative("server.stream_tick_gap", c.StreamTickGap).
		Err()
}

// Addr is the configured listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
