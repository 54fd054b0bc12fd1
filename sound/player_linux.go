//go:build linux

package sound

import "os/exec"

// playFile plays an audio file on Linux using paplay (PulseAudio), aplay
// (ALSA) or ffplay, whichever succeeds first
func playFile(path string) error {
	players := []struct {
		cmd  string
		args []string
	}{
		{"paplay", []string{path}},
		{"aplay", []string{"-q", path}},
		{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}},
	}

	for _, player := range players {
		if _, err := exec.LookPath(player.cmd); err != nil {
			continue
		}
		cmd := exec.Command(player.cmd, player.args...)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return terminalBell()
}
