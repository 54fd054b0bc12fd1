package theme

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"ringring/logging"
	"ringring/paths"
)

// EnvTheme is the environment variable that overrides every other source.
const EnvTheme = "CLAUDE_SOUND_THEME"

// FallbackTheme is used when no other source yields a theme.
const FallbackTheme = "peon"

// Resolver picks the active theme for one invocation.
// Getenv and LegacyThemeFile are swappable so resolution is testable without
// touching process-global state.
type Resolver struct {
	Config    Config
	SessionID string
	Cwd       string

	Getenv          func(string) string // defaults to os.Getenv
	LegacyThemeFile string              // defaults to paths.LegacyThemeFile()
}

// NewResolver builds a Resolver bound to the real environment.
func NewResolver(cfg Config, sessionID, cwd string) *Resolver {
	return &Resolver{
		Config:          cfg,
		SessionID:       sessionID,
		Cwd:             cwd,
		Getenv:          os.Getenv,
		LegacyThemeFile: paths.LegacyThemeFile(),
	}
}

// Resolve evaluates the priority chain and always returns a theme name:
//  1. CLAUDE_SOUND_THEME env var
//  2. workspace pin from config
//  3. cached session theme
//  4. random pool (mode=random)
//  5. config theme field
//  6. legacy theme file
//  7. "peon"
//
// Every I/O step degrades silently to "absent".
func (r *Resolver) Resolve() string {
	if theme := r.Getenv(EnvTheme); theme != "" {
		logging.Logger.Debug("Theme from env override", "theme", theme)
		return theme
	}

	if theme := r.Config.Workspaces[r.Cwd]; theme != "" {
		logging.Logger.Debug("Theme from workspace pin", "theme", theme, "cwd", r.Cwd)
		return theme
	}

	if r.SessionID != "" {
		if data, err := os.ReadFile(paths.SessionThemeFile(r.SessionID)); err == nil {
			if cached := strings.TrimSpace(string(data)); cached != "" {
				logging.Logger.Debug("Theme from session cache", "theme", cached, "session_id", r.SessionID)
				return cached
			}
		}
	}

	if r.Config.Mode == "random" && len(r.Config.RandomPool) > 0 {
		theme := r.Config.RandomPool[rand.Intn(len(r.Config.RandomPool))]
		logging.Logger.Debug("Theme from random pool", "theme", theme)
		return theme
	}

	if r.Config.Theme != "" {
		logging.Logger.Debug("Theme from config", "theme", r.Config.Theme)
		return r.Config.Theme
	}

	if data, err := os.ReadFile(r.LegacyThemeFile); err == nil {
		if legacy := strings.TrimSpace(string(data)); legacy != "" {
			logging.Logger.Debug("Theme from legacy file", "theme", legacy)
			return legacy
		}
	}

	return FallbackTheme
}

// PersistSessionTheme caches the resolved theme for this session so later
// events reuse it. No-op when the session id is empty; write failures are
// ignored.
func (r *Resolver) PersistSessionTheme(theme string) {
	if r.SessionID == "" {
		return
	}
	if err := os.WriteFile(paths.SessionThemeFile(r.SessionID), []byte(theme), 0644); err != nil {
		logging.Logger.Warn("Failed to persist session theme", "error", err)
	}
}

// FindThemeDir locates the directory holding the named theme's manifest.
// The data dir is checked first, then the legacy ~/.claude/sounds tree.
// Returns empty string when the theme is installed nowhere.
func FindThemeDir(name string) string {
	for _, root := range []string{paths.DataDir(), paths.LegacySoundsDir()} {
		dir := filepath.Join(root, name)
		if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err == nil {
			return dir
		}
	}
	return ""
}
