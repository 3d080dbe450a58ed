// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// LocalConfig is the project-local config file, relative to the working directory.
const LocalConfig = ".printpos/config.yaml"

// UserConfig returns ~/.config/printpos/config.yaml, or "" when the home
// directory cannot be determined.
func UserConfig() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "printpos", "config.yaml")
}

// ResolveConfig picks the config file to load.
//
// Lookup order:
//   - explicit, when non-empty (returned even if it does not exist so the
//     caller reports the read error)
//   - .printpos/config.yaml in the working directory
//   - ~/.config/printpos/config.yaml
//
// found is false when no candidate exists; path is then "".
func ResolveConfig(explicit string) (path string, found bool) {
	if explicit != "" {
		return explicit, true
	}
	for _, candidate := range []string{LocalConfig, UserConfig()} {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// WriteTarget returns the file config writes should go to: the loaded file
// when there is one, otherwise the project-local config.
func WriteTarget(loaded string) string {
	if loaded != "" {
		return loaded
	}
	return LocalConfig
}
