package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/timer"
)

var extensions = []string{".json", ".yaml", ".yml"}

// FileLoader loads definitions from directories on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches dirs in order.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load returns the definition stored as <key>.json, <key>.yaml or <key>.yml
// in the first directory that has one.
func (l *FileLoader) Load(key string) (*timer.Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, key+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return LoadFile(path)
		}
	}
	return nil, errors.NotFound("timer", key).WithDetail("dirs", l.dirs)
}

// LoadAll decodes every definition file directly inside the loader's
// directories, keyed by file name without extension. Later directories
// replace earlier keys. Missing directories are skipped.
func (l *FileLoader) LoadAll() (map[string]*timer.Definition, error) {
	defs := make(map[string]*timer.Definition)
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		found, err := loadDir(os.DirFS(dir), dir)
		if err != nil {
			return nil, err
		}
		for key, def := range found {
			defs[key] = def
		}
	}
	return defs, nil
}

func loadDir(fsys fs.FS, label string) (map[string]*timer.Definition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", label, err)
	}

	defs := make(map[string]*timer.Definition)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := FormatFromPath(entry.Name())
		if !ok {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("catalog: reading %s: %w", filepath.Join(label, entry.Name()), err)
		}
		def, err := Decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("catalog: parsing %s: %w", filepath.Join(label, entry.Name()), err)
		}
		defs[KeyFromPath(entry.Name())] = def
	}
	return defs, nil
}

// LoadFile decodes the definition at path, choosing the format by extension.
func LoadFile(path string) (*timer.Definition, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, errors.InvalidFormat("path", "a .json, .yaml or .yml file").WithDetail("path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	def, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return def, nil
}

// KeyFromPath returns the registry key for a definition file.
func KeyFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
