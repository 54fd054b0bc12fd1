package cmd

import (
	"fmt"

	"ringring/installer"
	"ringring/logging"
)

// SetupCmd installs the binary and registers the Claude Code hooks
type SetupCmd struct {
	BinDir     string `help:"Directory to install the binary into" type:"path" default:"~/.local/bin"`
	SkipBinary bool   `help:"Only register hooks, don't copy the binary"`
}

// Run executes the setup
func (s *SetupCmd) Run() error {
	if !s.SkipBinary {
		dest, err := installer.InstallBinary(s.BinDir)
		if err != nil {
			return err
		}
		fmt.Printf("Installed binary: %s\n", dest)
	}

	settingsPath := installer.ClaudeSettingsPath()
	if err := installer.RegisterHooks(settingsPath); err != nil {
		return err
	}
	logging.Logger.Info("Hooks registered", "settings", settingsPath)
	fmt.Printf("Registered hooks in %s\n", settingsPath)
	fmt.Println("Claude Code will chime on the next session start.")
	return nil
}
