//go:build windows

package sound

import (
	"fmt"
	"os/exec"
)

// playFile plays an audio file on Windows using the PowerShell SoundPlayer
func playFile(path string) error {
	script := fmt.Sprintf("(New-Object System.Media.SoundPlayer '%s').PlaySync()", path)
	cmd := exec.Command("powershell", "-NoProfile", "-c", script)
	if err := cmd.Run(); err == nil {
		return nil
	}

	return terminalBell()
}
