package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultLogSubdir = "logs"

// ExecutableDir returns the directory of the running binary, or the working
// directory when that cannot be determined.
func ExecutableDir() string {
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// resolveRuntimePath makes raw absolute. Relative paths are joined onto base,
// which is the config file's directory when one was read and the
// executable's directory otherwise. An empty raw uses fallback.
func resolveRuntimePath(base, raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = fallback
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	if base == "" {
		base = ExecutableDir()
	}
	return filepath.Clean(filepath.Join(base, target))
}
