package catalog

import (
	"embed"
	"io/fs"

	"github.com/RichTeaMan/timer/timer"
)

//go:embed builtin/*.json builtin/*.yaml
var builtinFS embed.FS

// Builtins decodes the timers embedded in the binary.
func Builtins() (map[string]*timer.Definition, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	return loadDir(sub, "builtin")
}
