package dispatch

import (
	"fmt"
	"os"
	"time"

	"ringring/logging"
	"ringring/manifest"
	"ringring/paths"
	"ringring/theme"
)

// handleSessionStart runs the deferred-greeting protocol.
//
// Claude Code fires SessionStart for both fresh sessions (startup) and
// restored ones (resume), often back to back. A greeting for both would
// double-chime, so the startup sound is scheduled behind a flag file and a
// short delay; a resume arriving in the window deletes the flag and the
// deferred task finds it gone and stays quiet.
func (d *Dispatcher) handleSessionStart(r *theme.Resolver, m *manifest.Manifest, themeDir, themeName, sessionID, source string) error {
	switch source {
	case "startup":
		return d.scheduleGreeting(r, m, themeDir, themeName, sessionID)
	case "resume":
		// Cancellation signal for a pending startup invocation.
		flag := paths.StartupFlagFile(sessionID)
		if err := os.Remove(flag); err == nil {
			logging.Logger.Debug("Cancelled scheduled greeting", "session_id", sessionID)
		}
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) scheduleGreeting(r *theme.Resolver, m *manifest.Manifest, themeDir, themeName, sessionID string) error {
	// Pin the theme for the rest of the session before anything else.
	r.PersistSessionTheme(themeName)

	flag := paths.StartupFlagFile(sessionID)
	if err := os.WriteFile(flag, nil, 0644); err != nil {
		return fmt.Errorf("failed to create startup flag: %w", err)
	}

	// The sound is fixed at schedule time, not re-rolled when the timer
	// fires.
	pick := manifest.PickSound(m, "greeting")

	// The process is one-shot, so "deferred" means blocking this invocation
	// until the timer fires. The flag re-check is the cancellation point: a
	// concurrent resume invocation may have deleted it.
	done := make(chan struct{})
	time.AfterFunc(d.StartupDelay, func() {
		defer close(done)

		if _, err := os.Stat(flag); err != nil {
			logging.Logger.Debug("Greeting cancelled before fire time", "session_id", sessionID)
			return
		}
		if pick != nil {
			path := manifest.SoundPath(themeDir, pick)
			if err := d.Player.Play(path); err != nil {
				logging.Logger.Warn("Greeting playback failed", "error", err, "file", path)
			}
		}
		// Best-effort cleanup; the user-visible part already happened.
		os.Remove(flag)
	})
	<-done

	return nil
}
