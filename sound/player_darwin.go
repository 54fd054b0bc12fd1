//go:build darwin

package sound

import "os/exec"

// playFile plays an audio file on macOS using afplay
func playFile(path string) error {
	cmd := exec.Command("afplay", path)
	if err := cmd.Run(); err == nil {
		return nil
	}

	return terminalBell()
}
