package catalog

// Config configures where the registry looks for definition files.
type Config struct {
	// Dirs are searched in order. Files in later directories replace
	// earlier ones and the built-ins with the same key.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`

	// SkipBuiltins leaves the embedded timers out of the registry.
	SkipBuiltins bool `yaml:"skip_builtins" mapstructure:"skip_builtins"`
}
