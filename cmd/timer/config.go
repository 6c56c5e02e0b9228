package main

import (
	"cmp"

	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/config"
	"github.com/RichTeaMan/timer/observability"
	"github.com/RichTeaMan/timer/runner"
	"github.com/RichTeaMan/timer/server"
	"github.com/RichTeaMan/timer/version"
)

const (
	serviceName = "timer"
	defaultPort = 8080
)

// AppConfig is the full configuration of the timer binary.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Runner        runner.Config        `yaml:"runner" mapstructure:"runner"`
	Catalog       catalog.Config       `yaml:"catalog" mapstructure:"catalog"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	c.Name = cmp.Or(c.Name, serviceName)
	if c.Version == "" {
		c.Version = version.GetVersionInfo().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Runner.ApplyDefaults()
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Runner.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// loadConfig reads config files and environment, then lets command-line
// flags override them. Terminal commands log at warn unless configured.
func loadConfig(terminal bool) (*AppConfig, error) {
	cfg := &AppConfig{}
	var opts []config.LoaderOption
	if flagConfig != "" {
		opts = append(opts, config.WithConfigFile(flagConfig))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}

	if terminal && cfg.Logging.Level == "" && !cfg.Debug {
		cfg.Logging.Level = "warn"
	}
	if flagSpeed > 0 {
		cfg.Runner.Speed = flagSpeed
	}
	if flagTick > 0 {
		cfg.Runner.TickInterval = flagTick
	}
	if flagPort > 0 {
		cfg.Server.Port = flagPort
	}
	if flagHost != "" {
		cfg.Server.Host = flagHost
	}
	cfg.Catalog.Dirs = append(cfg.Catalog.Dirs, flagDirs...)

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
