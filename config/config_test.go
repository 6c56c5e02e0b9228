package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RichTeaMan/timer/logger"
)

type testRunnerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
	Speed        float64       `yaml:"speed" mapstructure:"speed"`
}

type testAppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Runner        testRunnerConfig `yaml:"runner" mapstructure:"runner"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "timer"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging defaults, got %+v", cfg.Logging)
		}
	})

	t.Run("debug raises the log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "timer", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug level, got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "timer", Debug: true, Logging: loggingLevel("warn")}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected warn level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "timer", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name: is required"},
		{"invalid environment", ServiceConfig{Name: "timer", Environment: "moon"}, "config.environment: must be one of"},
		{"invalid logging", ServiceConfig{Name: "timer", Environment: "staging", Logging: loggingLevel("loud")}, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.cfg.Logging.Format == "" {
				tc.cfg.Logging.Format = "json"
				tc.cfg.Logging.Output = "stderr"
			}
			if tc.cfg.Logging.Level == "" {
				tc.cfg.Logging.Level = "info"
			}
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: timer
environment: staging
runner:
  tick_interval: 250ms
  speed: 2
logging:
  level: warn
  format: json
`)

	var cfg testAppConfig
	if err := LoadConfig("timer", &cfg, WithConfigFile(path), WithEnvPrefix("TIMERTEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "timer" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Runner.TickInterval != 250*time.Millisecond {
		t.Errorf("expected 250ms tick, got %v", cfg.Runner.TickInterval)
	}
	if cfg.Runner.Speed != 2 {
		t.Errorf("expected speed 2, got %v", cfg.Runner.Speed)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "runner:\n  speed: 2\n")
	t.Setenv("TIMERTEST_RUNNER_SPEED", "8")
	t.Setenv("TIMERTEST_LOGGING_LEVEL", "error")

	var cfg testAppConfig
	if err := LoadConfig("timer", &cfg, WithConfigFile(path), WithEnvPrefix("TIMERTEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Runner.Speed != 8 {
		t.Errorf("expected env to override speed, got %v", cfg.Runner.Speed)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env to set logging level, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "TIMERENV_RUNNER_SPEED=3\n")
	t.Cleanup(func() { os.Unsetenv("TIMERENV_RUNNER_SPEED") })

	var cfg testAppConfig
	err := LoadConfig("timer", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")),
		WithEnvFile(envPath),
		WithEnvPrefix("TIMERENV"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Runner.Speed != 3 {
		t.Errorf("expected speed from .env file, got %v", cfg.Runner.Speed)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testAppConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "runner: [unclosed\n")

	var cfg testAppConfig
	if err := LoadConfig("timer", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected an error for a malformed explicit config file")
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	var cfg testAppConfig
	err := Load("timer", &cfg, WithConfigFile("/nonexistent/path.yml"), WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "timer" {
		t.Errorf("expected name to default to the service name, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %q", cfg.Environment)
	}
}

func TestLocateSearchesInOrder(t *testing.T) {
	fs := &mockFS{
		files: map[string]bool{
			filepath.Join("cmd", "timer", "config.yml"): true,
			"config.yml": true,
			".env":       true,
		},
	}
	configFile, envFile := newLoader("timer", []LoaderOption{WithFileSystem(fs)}).locate("timer")
	if configFile != filepath.Join("cmd", "timer", "config.yml") {
		t.Errorf("config file = %q", configFile)
	}
	if envFile != ".env" {
		t.Errorf("env file = %q", envFile)
	}
}

func TestLocateUserConfigDir(t *testing.T) {
	want := filepath.Join("/home/me/.config", "timer", "config.yml")
	fs := &mockFS{configDir: "/home/me/.config", files: map[string]bool{want: true}}
	if got, _ := newLoader("timer", []LoaderOption{WithFileSystem(fs)}).locate("timer"); got != want {
		t.Errorf("config file = %q, want %q", got, want)
	}
}

func TestLocateExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"config.yml": true}}
	l := newLoader("timer", []LoaderOption{
		WithFileSystem(fs),
		WithConfigFile("/etc/timer.yml"),
		WithEnvFile("/etc/timer.env"),
	})
	configFile, envFile := l.locate("timer")
	if configFile != "/etc/timer.yml" || envFile != "/etc/timer.env" {
		t.Errorf("got %q and %q, want the explicit paths", configFile, envFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("RUNNER_TICK_INTERVAL")
	want := []string{"runner_tick_interval", "runner.tick.interval", "runner.tick_interval"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if single := envKeyVariants("SPEED"); len(single) != 1 || single[0] != "speed" {
		t.Errorf("unexpected single-part variants %v", single)
	}
}

func TestNewLoaderPrefix(t *testing.T) {
	if l := newLoader("timer", nil); l.envPrefix != "TIMER" {
		t.Errorf("default prefix = %q, want TIMER", l.envPrefix)
	}
	if l := newLoader("timer", []LoaderOption{WithEnvPrefix("-")}); l.envPrefix != "" {
		t.Errorf("prefix = %q, want none", l.envPrefix)
	}
	if _, ok := newLoader("timer", nil).fs.(osFS); !ok {
		t.Error("expected the local disk by default")
	}
}

type mockFS struct {
	files     map[string]bool
	configDir string
}

func (m *mockFS) Exists(path string) bool        { return m.files[path] }
func (m *mockFS) LoadEnv(string) error           { return nil }
func (m *mockFS) UserConfigDir() (string, error) { return m.configDir, nil }

func loggingLevel(level string) logger.Config {
	return logger.Config{Level: level, Format: "json", Output: "stderr"}
}
