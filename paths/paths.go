package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigDir returns the ringring configuration directory.
// Honors XDG_CONFIG_HOME, otherwise falls back to the platform default.
func ConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "ringring")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), "Library", "Application Support", "ringring")
	}
	return filepath.Join(homeDir(), ".config", "ringring")
}

// DataDir returns the directory where installed themes live.
// Honors XDG_DATA_HOME, otherwise falls back to the platform default.
func DataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "ringring")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), "Library", "Application Support", "ringring")
	}
	return filepath.Join(homeDir(), ".local", "share", "ringring")
}

// ConfigFile returns the path to config.json.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LegacySoundsDir returns the pre-XDG theme location under ~/.claude.
func LegacySoundsDir() string {
	return filepath.Join(homeDir(), ".claude", "sounds")
}

// LegacyThemeFile returns the legacy single-line theme-name file.
func LegacyThemeFile() string {
	return filepath.Join(LegacySoundsDir(), "theme")
}

// SessionThemeFile returns the per-session theme cache file.
// Later hook invocations in the same session read the theme from here.
func SessionThemeFile(sessionID string) string {
	return filepath.Join(os.TempDir(), ".claude-theme-"+sessionID)
}

// StartupFlagFile returns the per-session startup-scheduled flag file.
// Its existence means a greeting sound is scheduled and not yet cancelled.
func StartupFlagFile(sessionID string) string {
	return filepath.Join(os.TempDir(), ".claude-startup-"+sessionID)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return home
			}
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}
