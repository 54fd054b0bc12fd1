// Package theme resolves which theme a hook invocation should use.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents config.json. All fields are optional; a missing or
// malformed file yields the zero value.
type Config struct {
	Mode       string            `json:"mode,omitempty"`
	Theme      string            `json:"theme,omitempty"`
	RandomPool []string          `json:"random_pool,omitempty"`
	Workspaces map[string]string `json:"workspaces,omitempty"`
}

// LoadConfig reads config.json from the given path.
// Never fails: any read or parse error yields an empty config.
func LoadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Save writes the config to the given path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
