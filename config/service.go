package config

import (
	"fmt"

	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/validation"
)

// Environments are the accepted values of ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// Config is what Load and the bootstrap App need from a config struct.
type Config interface {
	GetServiceConfig() *ServiceConfig
	ApplyDefaults()
	Validate() error
}

// ServiceConfig is the identity and logging section shared by every
// command. Embed it squashed so its keys sit at the top level:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Runner runner.Config `yaml:"runner" mapstructure:"runner"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig is promoted to embedding structs.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults picks the development environment and, with debug set,
// debug logging. Overrides call it before their own defaults.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate requires a name and a known environment, then checks logging.
func (c *ServiceConfig) Validate() error {
	err := validation.New().
		Required("config.name", c.Name).
		Required("config.environment", c.Environment).
		OneOf("config.environment", c.Environment, Environments).
		Err()
	if err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
