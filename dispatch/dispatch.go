// Package dispatch drives one hook invocation: resolve the active theme,
// map the event, and fan out to the notification and playback collaborators.
package dispatch

import (
	"os"
	"time"

	"ringring/event"
	"ringring/logging"
	"ringring/manifest"
	"ringring/notify"
	"ringring/paths"
	"ringring/sound"
	"ringring/theme"

	"golang.org/x/sync/errgroup"
)

// startupDelay is how long a startup greeting is held back so a
// near-simultaneous resume can cancel it.
const startupDelay = time.Second

// Dispatcher orchestrates one hook invocation. Collaborators are injectable
// for tests; NewDispatcher wires the real ones.
type Dispatcher struct {
	Player   sound.Player
	Notifier notify.Notifier

	// StartupDelay overrides the deferred greeting delay. Tests only.
	StartupDelay time.Duration
}

// NewDispatcher returns a Dispatcher bound to the system audio and
// notification backends.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Player:       sound.SystemPlayer{},
		Notifier:     notify.NewDesktop(""),
		StartupDelay: startupDelay,
	}
}

// Handle processes one hook event end to end. A missing theme or manifest is
// "nothing to do", not an error. The returned error only reports scheduling
// failures from the session-start path; the caller is expected to log and
// swallow it so the hook never fails the host.
func (d *Dispatcher) Handle(input event.HookInput) error {
	cfg := theme.LoadConfig(paths.ConfigFile())
	cwd, _ := os.Getwd()
	resolver := theme.NewResolver(cfg, input.SessionID, cwd)
	themeName := resolver.Resolve()

	themeDir := theme.FindThemeDir(themeName)
	if themeDir == "" {
		logging.Logger.Info("Theme not installed, nothing to do", "theme", themeName)
		return nil
	}
	m := manifest.Load(themeDir)
	if m == nil {
		logging.Logger.Info("Theme has no readable manifest, nothing to do", "theme", themeName)
		return nil
	}

	action := event.Map(input)
	logging.Logger.Debug("Mapped hook event",
		"event", input.HookEventName,
		"category", action.Category,
		"skip_notify", action.SkipNotify,
		"theme", themeName)

	if input.HookEventName == "SessionStart" {
		return d.handleSessionStart(resolver, m, themeDir, themeName, input.SessionID, action.SessionStartSource)
	}

	d.dispatch(m, themeDir, action)
	return nil
}

// dispatch composes the final notification text and invokes both
// collaborators. Title falls back manifest > mapper; body falls back sound
// line > manifest body > mapper. Both calls are best-effort.
func (d *Dispatcher) dispatch(m *manifest.Manifest, themeDir string, action event.Action) {
	if action.Category == "" {
		return
	}

	pick := manifest.PickSound(m, action.Category)
	title, body := composeText(m, action, pick)

	var g errgroup.Group
	if !action.SkipNotify {
		g.Go(func() error {
			if err := d.Notifier.Send(title, body); err != nil {
				logging.Logger.Warn("Notification failed", "error", err)
			}
			return nil
		})
	}
	if pick != nil {
		path := manifest.SoundPath(themeDir, pick)
		g.Go(func() error {
			if err := d.Player.Play(path); err != nil {
				logging.Logger.Warn("Playback failed", "error", err, "file", path)
			}
			return nil
		})
	}
	g.Wait()
}

// composeText applies the three-level fallback chain for the notification
// title and body.
func composeText(m *manifest.Manifest, action event.Action, pick *manifest.Sound) (title, body string) {
	title = action.Title
	body = action.Body

	mTitle, mBody := manifest.CategoryText(m, action.Category)
	if mTitle != "" {
		title = mTitle
	}
	if mBody != "" {
		body = mBody
	}
	if pick != nil && pick.Line != "" {
		body = pick.Line
	}
	return title, body
}
