// Package config loads service configuration from a config.yml file, an
// optional .env file and environment variables.
//
// Files are found by searching the usual locations for the service
// (cmd/<service>/config.yml, config/config.yml, config.yml and the
// user config directory) unless explicit paths are given. Environment
// variables carrying the service prefix override file values, with
// underscores mapped onto nested keys:
//
//	TIMER_RUNNER_SPEED=4      -> runner.speed
//	TIMER_LOGGING_LEVEL=debug -> logging.level
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.Load("timer", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
package config
