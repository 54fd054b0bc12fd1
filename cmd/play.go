package cmd

import (
	"fmt"
	"os"

	"ringring/manifest"
	"ringring/paths"
	"ringring/sound"
	"ringring/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	playThemeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	playLineStyle  = lipgloss.NewStyle().Italic(true)
	playFileStyle  = lipgloss.NewStyle().Faint(true)
)

// PlayCmd previews a sound category. Unlike hook dispatch this path is
// interactive, so unknown themes and categories are real errors.
type PlayCmd struct {
	Category string `arg:"" help:"Category to preview (e.g. greeting, complete, annoyed)"`
	Theme    string `help:"Theme to preview instead of the active one" short:"t"`
}

// Run executes the preview
func (p *PlayCmd) Run() error {
	name := p.Theme
	if name == "" {
		cfg := theme.LoadConfig(paths.ConfigFile())
		cwd, _ := os.Getwd()
		name = theme.NewResolver(cfg, "", cwd).Resolve()
	}

	themeDir := theme.FindThemeDir(name)
	if themeDir == "" {
		return fmt.Errorf("unknown theme %q", name)
	}
	m := manifest.Load(themeDir)
	if m == nil {
		return fmt.Errorf("theme %q has no readable manifest", name)
	}
	if _, ok := m.Categories[p.Category]; !ok {
		return fmt.Errorf("unknown category %q in theme %q", p.Category, name)
	}

	pick := manifest.PickSound(m, p.Category)
	if pick == nil {
		fmt.Printf("%s/%s has no sounds\n", playThemeStyle.Render(name), p.Category)
		return nil
	}

	fmt.Printf("%s/%s\n", playThemeStyle.Render(name), p.Category)
	if pick.Line != "" {
		fmt.Println(playLineStyle.Render("  “" + pick.Line + "”"))
	}
	path := manifest.SoundPath(themeDir, pick)
	fmt.Println(playFileStyle.Render("  " + path))

	if err := (sound.SystemPlayer{}).Play(path); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}
