package installer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ringring/paths"
)

// HookCommand is the command registered for every hook event.
const HookCommand = "ringring"

// hookEvents are the Claude Code lifecycle events ringring subscribes to.
var hookEvents = []string{"SessionStart", "Stop", "Notification", "PermissionRequest"}

// ClaudeSettingsPath returns the Claude Code settings.json location.
// Checks CLAUDE_CONFIG_DIR first, then falls back to ~/.claude.
func ClaudeSettingsPath() string {
	dir := os.Getenv("CLAUDE_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = filepath.Join(os.TempDir(), ".claude")
		} else {
			dir = filepath.Join(home, ".claude")
		}
	}
	return filepath.Join(paths.ExpandPath(dir), "settings.json")
}

// RegisterHooks merges ringring hook entries into the Claude Code settings
// file. Idempotent; unrelated settings are preserved. The read-merge-write
// runs under an exclusive file lock so concurrent installs don't clobber
// each other.
func RegisterHooks(settingsPath string) error {
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	file, err := os.OpenFile(settingsPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer unlockFile(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	root := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			// A corrupt settings file is not ours to destroy.
			return fmt.Errorf("settings file is not valid JSON: %w", err)
		}
	}

	hooks, ok := root["hooks"].(map[string]any)
	if !ok {
		hooks = make(map[string]any)
		root["hooks"] = hooks
	}

	for _, eventName := range hookEvents {
		entries, _ := hooks[eventName].([]any)
		if hasHookCommand(entries, HookCommand) {
			continue
		}
		entries = append(entries, map[string]any{
			"matcher": "",
			"hooks": []any{
				map[string]any{"type": "command", "command": HookCommand},
			},
		})
		hooks[eventName] = entries
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate settings: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek settings: %w", err)
	}
	if _, err := file.Write(out); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// hasHookCommand reports whether any entry already runs the given command.
func hasHookCommand(entries []any, command string) bool {
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		inner, _ := m["hooks"].([]any)
		for _, h := range inner {
			hm, ok := h.(map[string]any)
			if !ok {
				continue
			}
			if hm["command"] == command {
				return true
			}
		}
	}
	return false
}
