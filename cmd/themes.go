package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"ringring/installer"
	"ringring/manifest"
	"ringring/paths"
	"ringring/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var activeThemeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

// ThemesCmd groups theme management subcommands
type ThemesCmd struct {
	List    ThemesListCmd    `cmd:"" help:"List installed themes"`
	Use     ThemesUseCmd     `cmd:"" help:"Set the active theme"`
	Install ThemesInstallCmd `cmd:"" help:"Install a theme from a zip file or URL"`
}

// ThemesListCmd lists installed themes
type ThemesListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (l *ThemesListCmd) Run() error {
	themes := manifest.ListThemes(paths.DataDir(), paths.LegacySoundsDir())

	if l.Format == "json" {
		data, err := json.MarshalIndent(themes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	cfg := theme.LoadConfig(paths.ConfigFile())
	cwd, _ := os.Getwd()
	active := theme.NewResolver(cfg, "", cwd).Resolve()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tCATEGORIES\tSOUNDS\tACTIVE")
	for _, m := range themes {
		sounds := 0
		for _, cat := range m.Categories {
			sounds += len(cat.Sounds)
		}
		marker := ""
		name := m.Name
		if m.Name == active {
			marker = "✓"
			name = activeThemeStyle.Render(name)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, m.DisplayName, len(m.Categories), sounds, marker)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d themes\n", len(themes))
	return nil
}

// ThemesUseCmd sets the active theme in config.json
type ThemesUseCmd struct {
	Theme string `arg:"" optional:"" help:"Theme name (interactive picker when omitted)"`
}

// Run executes the use command
func (u *ThemesUseCmd) Run() error {
	if u.Theme == "" {
		themes := manifest.ListThemes(paths.DataDir(), paths.LegacySoundsDir())
		if len(themes) == 0 {
			return fmt.Errorf("no themes installed")
		}
		options := make([]huh.Option[string], 0, len(themes))
		for _, m := range themes {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", m.DisplayName, m.Name), m.Name))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Active theme").
					Options(options...).
					Value(&u.Theme),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if theme.FindThemeDir(u.Theme) == "" {
		return fmt.Errorf("theme %q is not installed", u.Theme)
	}

	cfg := theme.LoadConfig(paths.ConfigFile())
	cfg.Theme = u.Theme
	if err := cfg.Save(paths.ConfigFile()); err != nil {
		return err
	}

	fmt.Printf("Active theme set to %s\n", activeThemeStyle.Render(u.Theme))
	return nil
}

// ThemesInstallCmd installs a theme package
type ThemesInstallCmd struct {
	Source string `arg:"" help:"Path or http(s) URL of a theme zip"`
	Force  bool   `help:"Overwrite an existing theme of the same name" short:"f"`
}

// Run executes the install command
func (i *ThemesInstallCmd) Run() error {
	name, err := installer.InstallTheme(i.Source, paths.DataDir(), i.Force)
	if err != nil {
		return err
	}
	fmt.Printf("Installed theme %s\n", activeThemeStyle.Render(name))
	fmt.Printf("Activate it with: ringring themes use %s\n", name)
	return nil
}
