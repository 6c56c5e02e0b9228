package catalog

import (
	"fmt"
	"os"
	"sync"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/timer"
	"github.com/RichTeaMan/timer/util"
)

// Entry is a registered key with its display title.
type Entry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

// Registry holds validated definitions by key.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*timer.Definition
	log  *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*timer.Definition),
		log:  logger.Get("catalog"),
	}
}

// New creates a registry seeded from the built-ins and cfg.Dirs.
func New(cfg Config) (*Registry, error) {
	r := NewRegistry()

	if !cfg.SkipBuiltins {
		builtins, err := Builtins()
		if err != nil {
			return nil, fmt.Errorf("catalog: loading built-in timers: %w", err)
		}
		r.registerAll(builtins, "builtin")
	}

	for _, dir := range cfg.Dirs {
		defs, err := NewFileLoader(dir).LoadAll()
		if err != nil {
			return nil, err
		}
		r.registerAll(defs, dir)
	}
	return r, nil
}

func (r *Registry) registerAll(defs map[string]*timer.Definition, source string) {
	for _, key := range util.SortedKeys(defs) {
		r.store(key, defs[key])
		r.log.Debug("registered timer", logger.Fields("key", key, logger.FieldTimer, defs[key].Name, "source", source))
	}
}

// Register validates def and stores it under key, replacing any previous entry.
func (r *Registry) Register(key string, def timer.Definition) error {
	if key == "" {
		return errors.MissingField("key")
	}
	if err := Check(&def); err != nil {
		return err
	}
	r.store(key, &def)
	return nil
}

func (r *Registry) store(key string, def *timer.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[key]; exists {
		r.log.Debug("replacing timer", logger.Fields("key", key))
	}
	r.defs[key] = clone(def)
}

// Fetch returns a copy of the definition registered under key.
func (r *Registry) Fetch(key string) (*timer.Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[key]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("timer", key)
	}
	return clone(def), nil
}

// Build fetches key and builds a fresh timer from it.
func (r *Registry) Build(key string) (*timer.Timer, error) {
	def, err := r.Fetch(key)
	if err != nil {
		return nil, err
	}
	return timer.Build(*def)
}

// Resolve accepts either a registered key or a path to a definition file.
// Registered keys win over files of the same name.
func (r *Registry) Resolve(ref string) (*timer.Definition, error) {
	def, err := r.Fetch(ref)
	if err == nil {
		return def, nil
	}
	if _, ok := FormatFromPath(ref); ok {
		if _, statErr := os.Stat(ref); statErr == nil {
			return LoadFile(ref)
		}
	}
	return nil, err
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return util.SortedKeys(r.defs)
}

// Entries lists every key with its title and timer name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return util.Map(util.SortedKeys(r.defs), func(key string) Entry {
		return Entry{Key: key, Title: Title(key), Name: r.defs[key].Name}
	})
}

// Len returns the number of registered timers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
