package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/RichTeaMan/timer/logger"
)

// FileSystem is the disk access the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) LoadEnv(path string) error      { return godotenv.Load(path) }
func (osFS) UserConfigDir() (string, error) { return os.UserConfigDir() }

type loader struct {
	fs         FileSystem
	configFile string
	envFile    string
	envPrefix  string
}

// LoaderOption customises LoadConfig.
type LoaderOption func(*loader)

// WithFileSystem replaces the local disk.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(l *loader) { l.fs = fs }
}

// WithConfigFile skips the search and reads path. Unlike a searched file,
// a malformed explicit file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile skips the search for a .env file and loads path.
func WithEnvFile(path string) LoaderOption {
	return func(l *loader) { l.envFile = path }
}

// WithEnvPrefix sets the prefix of the environment variables that override
// file values. It defaults to the upper-cased service name. "-" binds every
// variable.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *loader) { l.envPrefix = prefix }
}

func newLoader(serviceName string, opts []LoaderOption) *loader {
	l := &loader{fs: osFS{}, envPrefix: strings.ToUpper(serviceName)}
	for _, opt := range opts {
		opt(l)
	}
	if l.envPrefix == "-" {
		l.envPrefix = ""
	}
	return l
}

// locate returns the config and .env files to read, either of which may be
// empty.
func (l *loader) locate(serviceName string) (configFile, envFile string) {
	configFile, envFile = l.configFile, l.envFile
	if configFile == "" {
		configFile = l.first(l.configCandidates(serviceName))
	}
	if envFile == "" {
		envFile = l.first(envCandidates(serviceName))
	}
	return configFile, envFile
}

func (l *loader) configCandidates(serviceName string) []string {
	var paths []string
	for _, name := range []string{"config.yml", "config.yaml"} {
		paths = append(paths,
			filepath.Join("cmd", serviceName, name),
			filepath.Join("..", "cmd", serviceName, name),
			filepath.Join("config", name),
			name,
		)
	}
	if dir, err := l.fs.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, serviceName, "config.yml"))
	}
	return paths
}

func envCandidates(serviceName string) []string {
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		paths = append(paths, filepath.Join("cmd", serviceName, name), filepath.Join("config", name), name)
	}
	return paths
}

func (l *loader) first(paths []string) string {
	if i := slices.IndexFunc(paths, l.fs.Exists); i >= 0 {
		return paths[i]
	}
	return ""
}

// Load runs LoadConfig, names the service when the file did not, then
// applies defaults and validates.
func Load(serviceName string, cfg Config, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	base := cfg.GetServiceConfig()
	if base.Name == "" {
		base.Name = serviceName
	}
	cfg.ApplyDefaults()
	return cfg.Validate()
}

// LoadConfig unmarshals the config file, the .env file and the prefixed
// environment into cfg, later sources winning. Missing files are skipped.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	l := newLoader(serviceName, opts)
	configFile, envFile := l.locate(serviceName)
	log := logger.Get("config")

	v := viper.New()
	if configFile != "" && l.fs.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if l.configFile != "" {
				return fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			log.Warn("ignoring unreadable config file", logger.Fields("path", configFile, logger.FieldError, err.Error()))
		}
	}
	if envFile != "" && l.fs.Exists(envFile) {
		if err := l.fs.LoadEnv(envFile); err != nil {
			log.Warn("ignoring unreadable env file", logger.Fields("path", envFile, logger.FieldError, err.Error()))
		}
	}
	overrideFromEnv(v, l.envPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// overrideFromEnv sets every PREFIX_* variable on v under each nested key
// it could address.
func overrideFromEnv(v *viper.Viper, prefix string) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			if key, ok = strings.CutPrefix(key, prefix+"_"); !ok || key == "" {
				continue
			}
		}
		for _, k := range envKeyVariants(key) {
			v.Set(k, value)
		}
	}
}

// envKeyVariants maps an env key onto the nested keys it may address.
//
//	RUNNER_TICK_INTERVAL -> [runner_tick_interval, runner.tick.interval, runner.tick_interval]
func envKeyVariants(envKey string) []string {
	flat := strings.ToLower(envKey)
	parts := strings.Split(flat, "_")
	variants := []string{flat}
	add := func(k string) {
		if !slices.Contains(variants, k) {
			variants = append(variants, k)
		}
	}
	if len(parts) > 1 {
		add(strings.Join(parts, "."))
	}
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return variants
}
