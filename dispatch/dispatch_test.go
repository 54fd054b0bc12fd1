package dispatch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ringring/event"
	"ringring/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu     sync.Mutex
	played []string
}

func (p *fakePlayer) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, path)
	return nil
}

func (p *fakePlayer) files() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.played...)
}

type sentNotification struct {
	title string
	body  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) Send(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{title, body})
	return nil
}

func (n *fakeNotifier) notifications() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

// setupTheme isolates config, data, temp and home dirs and installs a "peon"
// theme (the resolver fallback) with the given manifest.
func setupTheme(t *testing.T, manifestJSON string) (*Dispatcher, *fakePlayer, *fakeNotifier, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLAUDE_SOUND_THEME", "")

	themeDir := filepath.Join(paths.DataDir(), "peon")
	require.NoError(t, os.MkdirAll(themeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "manifest.json"), []byte(manifestJSON), 0644))

	player := &fakePlayer{}
	notifier := &fakeNotifier{}
	d := &Dispatcher{
		Player:       player,
		Notifier:     notifier,
		StartupDelay: 10 * time.Millisecond,
	}
	return d, player, notifier, themeDir
}

func TestHandleStopPlaysAndNotifies(t *testing.T) {
	d, player, notifier, themeDir := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"complete": {"sounds": [{"file": "done.wav"}]}
		}
	}`)

	err := d.Handle(event.HookInput{HookEventName: "Stop"})
	require.NoError(t, err)

	require.Len(t, player.files(), 1)
	assert.Equal(t, filepath.Join(themeDir, "sounds", "done.wav"), player.files()[0])

	require.Len(t, notifier.notifications(), 1)
	assert.Equal(t, "Hotovo", notifier.notifications()[0].title)
	assert.Equal(t, "Okie dokie.", notifier.notifications()[0].body)
}

func TestHandleCompositionPrecedence(t *testing.T) {
	// Sound line beats manifest body beats mapper body; manifest title beats
	// mapper title.
	d, _, notifier, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"complete": {
				"title": "Work complete",
				"body": "Manifest body",
				"sounds": [{"file": "done.wav", "line": "Job's done!"}]
			}
		}
	}`)

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "Stop"}))

	require.Len(t, notifier.notifications(), 1)
	assert.Equal(t, "Work complete", notifier.notifications()[0].title)
	assert.Equal(t, "Job's done!", notifier.notifications()[0].body)
}

func TestHandleManifestBodyUsedWithoutSoundLine(t *testing.T) {
	d, _, notifier, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"complete": {
				"body": "Manifest body",
				"sounds": [{"file": "done.wav"}]
			}
		}
	}`)

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "Stop"}))

	require.Len(t, notifier.notifications(), 1)
	assert.Equal(t, "Manifest body", notifier.notifications()[0].body)
}

func TestHandleEmptyCategoryStillNotifies(t *testing.T) {
	d, player, notifier, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"complete": {"sounds": []}
		}
	}`)

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "Stop"}))

	assert.Empty(t, player.files())
	require.Len(t, notifier.notifications(), 1)
	assert.Equal(t, "Okie dokie.", notifier.notifications()[0].body)
}

func TestHandleSkipNotifyStillPlays(t *testing.T) {
	d, player, notifier, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"permission": {"sounds": [{"file": "ask.wav"}]}
		}
	}`)

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "PermissionRequest"}))

	assert.Len(t, player.files(), 1)
	assert.Empty(t, notifier.notifications())
}

func TestHandleUnknownEventUsesDefaultsVerbatim(t *testing.T) {
	d, _, notifier, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {
			"resource_limit": {"sounds": []}
		}
	}`)

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "Foo"}))

	require.Len(t, notifier.notifications(), 1)
	assert.Equal(t, "Neznámá událost", notifier.notifications()[0].title)
	assert.Equal(t, "Why not?", notifier.notifications()[0].body)
}

func TestHandleMissingThemeDoesNothing(t *testing.T) {
	d, player, notifier, themeDir := setupTheme(t, `{"name":"peon","display_name":"Peon","categories":{}}`)
	require.NoError(t, os.RemoveAll(themeDir))

	require.NoError(t, d.Handle(event.HookInput{HookEventName: "Stop"}))

	assert.Empty(t, player.files())
	assert.Empty(t, notifier.notifications())
}

const greetingManifest = `{
	"name": "peon",
	"display_name": "Peon",
	"categories": {
		"greeting": {"sounds": [{"file": "ready.wav", "line": "Ready to work?"}]}
	}
}`

func TestStartupPlaysGreetingOnce(t *testing.T) {
	d, player, notifier, themeDir := setupTheme(t, greetingManifest)

	err := d.Handle(event.HookInput{
		HookEventName: "SessionStart",
		SessionID:     "s1",
		Source:        "startup",
	})
	require.NoError(t, err)

	require.Len(t, player.files(), 1)
	assert.Equal(t, filepath.Join(themeDir, "sounds", "ready.wav"), player.files()[0])
	assert.Empty(t, notifier.notifications(), "SessionStart is silent")

	_, statErr := os.Stat(paths.StartupFlagFile("s1"))
	assert.True(t, os.IsNotExist(statErr), "flag removed after fire")

	cached, err := os.ReadFile(paths.SessionThemeFile("s1"))
	require.NoError(t, err)
	assert.Equal(t, "peon", string(cached), "startup persists the session theme")
}

func TestResumeCancelsScheduledStartup(t *testing.T) {
	d, player, _, _ := setupTheme(t, greetingManifest)
	d.StartupDelay = 200 * time.Millisecond

	startupDone := make(chan error, 1)
	go func() {
		startupDone <- d.Handle(event.HookInput{
			HookEventName: "SessionStart",
			SessionID:     "s1",
			Source:        "startup",
		})
	}()

	// Wait until the startup invocation has created the flag.
	flag := paths.StartupFlagFile("s1")
	require.Eventually(t, func() bool {
		_, err := os.Stat(flag)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	// A second, independent invocation delivers the resume.
	require.NoError(t, d.Handle(event.HookInput{
		HookEventName: "SessionStart",
		SessionID:     "s1",
		Source:        "resume",
	}))

	require.NoError(t, <-startupDone)

	assert.Empty(t, player.files(), "cancelled startup must not play")
	_, statErr := os.Stat(flag)
	assert.True(t, os.IsNotExist(statErr))
}

func TestResumeAloneIsSilent(t *testing.T) {
	d, player, notifier, _ := setupTheme(t, greetingManifest)

	require.NoError(t, d.Handle(event.HookInput{
		HookEventName: "SessionStart",
		SessionID:     "s1",
		Source:        "resume",
	}))

	assert.Empty(t, player.files())
	assert.Empty(t, notifier.notifications())
}

func TestSessionStartOtherSourceIsNoop(t *testing.T) {
	d, player, notifier, _ := setupTheme(t, greetingManifest)

	require.NoError(t, d.Handle(event.HookInput{
		HookEventName: "SessionStart",
		SessionID:     "s1",
		Source:        "clear",
	}))

	assert.Empty(t, player.files())
	assert.Empty(t, notifier.notifications())
	_, statErr := os.Stat(paths.StartupFlagFile("s1"))
	assert.True(t, os.IsNotExist(statErr), "no flag for non-startup sources")
}

func TestStartupWithEmptyGreetingCategoryRemovesFlag(t *testing.T) {
	d, player, _, _ := setupTheme(t, `{
		"name": "peon",
		"display_name": "Peon",
		"categories": {"greeting": {"sounds": []}}
	}`)

	require.NoError(t, d.Handle(event.HookInput{
		HookEventName: "SessionStart",
		SessionID:     "s1",
		Source:        "startup",
	}))

	assert.Empty(t, player.files())
	_, statErr := os.Stat(paths.StartupFlagFile("s1"))
	assert.True(t, os.IsNotExist(statErr))
}
