package cmd

import (
	"fmt"
	"os"

	"ringring/logging"

	"github.com/alecthomas/kong"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"50"`

	Hook   HookCmd   `cmd:"" default:"1" hidden:"" help:"Handle a Claude Code hook event from stdin"`
	Play   PlayCmd   `cmd:"" help:"Preview a sound category from a theme"`
	Themes ThemesCmd `cmd:"" help:"Manage sound themes (list, use, install)"`
	Setup  SetupCmd  `cmd:"" help:"Install the binary and register Claude Code hooks"`
}

// AfterApply initializes logging after CLI parsing
func (c *CLI) AfterApply() error {
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Export debug settings so hook invocations spawned by Claude append to
	// the same log file.
	if c.Debug || c.DebugFile != "" {
		os.Setenv("RINGRING_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("RINGRING_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 50 {
		os.Setenv("RINGRING_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	return nil
}
