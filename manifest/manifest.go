// Package manifest models a theme's manifest.json: the mapping from
// semantic categories to sound files and override text.
package manifest

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
)

// Manifest represents a theme's manifest.json.
type Manifest struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	Categories  map[string]Category `json:"categories"`
}

// Category holds the sounds and optional override text for one category.
type Category struct {
	Title  string  `json:"title,omitempty"`
	Body   string  `json:"body,omitempty"`
	Sounds []Sound `json:"sounds"`
}

// Sound is a single sound entry. File is relative to the theme's sounds/
// directory. Line, when set, is shown instead of the generic body text.
type Sound struct {
	File string `json:"file"`
	Line string `json:"line,omitempty"`
}

// Load reads manifest.json from a theme directory.
// Returns nil if the file is missing or malformed.
func Load(themeDir string) *Manifest {
	data, err := os.ReadFile(filepath.Join(themeDir, "manifest.json"))
	if err != nil {
		return nil
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return &m
}

// PickSound selects a random sound from the category.
// Returns nil if the category is missing or has no sounds. Selection has no
// memory across calls; repeats are expected.
func PickSound(m *Manifest, category string) *Sound {
	cat, ok := m.Categories[category]
	if !ok || len(cat.Sounds) == 0 {
		return nil
	}
	pick := cat.Sounds[rand.Intn(len(cat.Sounds))]
	return &pick
}

// CategoryText returns the category-level title and body overrides.
// Empty strings mean the caller's hardcoded defaults apply.
func CategoryText(m *Manifest, category string) (title, body string) {
	cat, ok := m.Categories[category]
	if !ok {
		return "", ""
	}
	return cat.Title, cat.Body
}

// SoundPath resolves a sound entry to its file under the theme's sounds/
// directory.
func SoundPath(themeDir string, s *Sound) string {
	return filepath.Join(themeDir, "sounds", s.File)
}

// ListThemes scans the given directories for theme manifests. Later
// directories do not shadow earlier ones; the first occurrence of a theme
// name wins. Unreadable manifests are skipped.
func ListThemes(dirs ...string) []Manifest {
	seen := make(map[string]bool)
	var themes []Manifest
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*", "manifest.json"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var m Manifest
			if err := json.Unmarshal(data, &m); err != nil {
				continue
			}
			// Use directory name if manifest name is empty.
			if m.Name == "" {
				m.Name = filepath.Base(filepath.Dir(path))
			}
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			themes = append(themes, m)
		}
	}
	return themes
}
