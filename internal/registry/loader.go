package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"ucid/pkg/types"
)

// LoadDir scans a directory for executable files and builds an engine
// registry from filenames. ID is the filename; Path is the absolute path.
func LoadDir(dir string) ([]types.Engine, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var engines []types.Engine
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !executable(info.Name(), info.Mode()) {
			continue
		}
		name := e.Name()
		engines = append(engines, types.Engine{ID: name, Name: name, Path: filepath.Join(abs, name)})
	}
	return engines, nil
}

// Resolve returns the engine with the given id, or the sole entry when id
// is empty and exactly one engine was discovered.
func Resolve(engines []types.Engine, id string) (types.Engine, error) {
	if id == "" {
		if len(engines) == 1 {
			return engines[0], nil
		}
		return types.Engine{}, fmt.Errorf("no engine id given and %d candidates found", len(engines))
	}
	for _, e := range engines {
		if e.ID == id {
			return e, nil
		}
	}
	return types.Engine{}, fmt.Errorf("engine not found in registry: %s", id)
}

func executable(name string, mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		return strings.HasSuffix(strings.ToLower(name), ".exe")
	}
	return mode.IsRegular() && mode.Perm()&0o111 != 0
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/engines
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
