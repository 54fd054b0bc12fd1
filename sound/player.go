// Package sound plays theme audio files through whatever the platform has.
package sound

import "fmt"

// Player plays one audio file to completion. Implementations block until
// playback finishes or fails.
type Player interface {
	Play(path string) error
}

// SystemPlayer shells out to the platform's audio tools.
// Platform-specific implementations are in player_*.go files with build tags.
type SystemPlayer struct{}

// Play plays the file at path, falling back to a terminal bell when no
// player is available.
func (SystemPlayer) Play(path string) error {
	return playFile(path)
}

// terminalBell outputs a terminal bell character as fallback
func terminalBell() error {
	fmt.Print("\a")
	return nil
}
