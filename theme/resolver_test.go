package theme

import (
	"os"
	"path/filepath"
	"testing"

	"ringring/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestResolver returns a resolver with no env override and no legacy file.
func newTestResolver(t *testing.T, cfg Config, sessionID, cwd string) *Resolver {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())
	return &Resolver{
		Config:          cfg,
		SessionID:       sessionID,
		Cwd:             cwd,
		Getenv:          func(string) string { return "" },
		LegacyThemeFile: filepath.Join(t.TempDir(), "theme"),
	}
}

func TestResolveFallbackToPeon(t *testing.T) {
	r := newTestResolver(t, Config{}, "", "/tmp")

	assert.Equal(t, "peon", r.Resolve())
}

func TestResolveConfigTheme(t *testing.T) {
	r := newTestResolver(t, Config{Theme: "aoe2"}, "", "/tmp")

	assert.Equal(t, "aoe2", r.Resolve())
}

func TestResolveLegacyThemeFile(t *testing.T) {
	r := newTestResolver(t, Config{}, "", "/tmp")
	require.NoError(t, os.WriteFile(r.LegacyThemeFile, []byte("icq\n"), 0644))

	assert.Equal(t, "icq", r.Resolve())
}

func TestResolveWorkspacePinOverridesConfig(t *testing.T) {
	cfg := Config{
		Theme:      "peon",
		Workspaces: map[string]string{"/home/user/project": "aoe3"},
	}
	r := newTestResolver(t, cfg, "", "/home/user/project")

	assert.Equal(t, "aoe3", r.Resolve())
}

func TestResolveEnvVarHighestPriority(t *testing.T) {
	cfg := Config{
		Theme:      "peon",
		Workspaces: map[string]string{"/proj": "aoe3"},
	}
	r := newTestResolver(t, cfg, "", "/proj")
	r.Getenv = func(key string) string {
		if key == EnvTheme {
			return "icq"
		}
		return ""
	}

	assert.Equal(t, "icq", r.Resolve())
}

func TestResolveSessionCacheBeatsConfigAndRandom(t *testing.T) {
	cfg := Config{
		Mode:       "random",
		Theme:      "peon",
		RandomPool: []string{"aoe2", "aoe3"},
	}
	r := newTestResolver(t, cfg, "s1", "/tmp")
	require.NoError(t, os.WriteFile(paths.SessionThemeFile("s1"), []byte(" cached \n"), 0644))

	assert.Equal(t, "cached", r.Resolve())
}

func TestResolveEmptySessionCacheIgnored(t *testing.T) {
	r := newTestResolver(t, Config{Theme: "aoe2"}, "s1", "/tmp")
	require.NoError(t, os.WriteFile(paths.SessionThemeFile("s1"), []byte("  \n"), 0644))

	assert.Equal(t, "aoe2", r.Resolve())
}

func TestResolveRandomPoolMembership(t *testing.T) {
	cfg := Config{
		Mode:       "random",
		Theme:      "peon",
		RandomPool: []string{"aoe2", "aoe3", "icq"},
	}
	r := newTestResolver(t, cfg, "", "/tmp")

	for i := 0; i < 20; i++ {
		assert.Contains(t, cfg.RandomPool, r.Resolve())
	}
}

func TestResolveRandomModeWithEmptyPoolFallsThrough(t *testing.T) {
	r := newTestResolver(t, Config{Mode: "random", Theme: "aoe2"}, "", "/tmp")

	assert.Equal(t, "aoe2", r.Resolve())
}

func TestPersistSessionTheme(t *testing.T) {
	r := newTestResolver(t, Config{}, "s42", "/tmp")

	r.PersistSessionTheme("aoe2")

	data, err := os.ReadFile(paths.SessionThemeFile("s42"))
	require.NoError(t, err)
	assert.Equal(t, "aoe2", string(data))
}

func TestPersistSessionThemeNoopWithoutSessionID(t *testing.T) {
	r := newTestResolver(t, Config{}, "", "/tmp")

	r.PersistSessionTheme("aoe2")

	_, err := os.ReadFile(paths.SessionThemeFile(""))
	assert.Error(t, err)
}

func TestFindThemeDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)
	t.Setenv("HOME", t.TempDir())

	themeDir := filepath.Join(dataDir, "ringring", "peon")
	require.NoError(t, os.MkdirAll(themeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "manifest.json"),
		[]byte(`{"name":"peon","display_name":"Peon","categories":{}}`), 0644))

	assert.Equal(t, themeDir, FindThemeDir("peon"))
	assert.Empty(t, FindThemeDir("missing"))
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Config{
		Mode:       "random",
		Theme:      "peon",
		RandomPool: []string{"peon", "aoe2"},
		Workspaces: map[string]string{"/proj": "icq"},
	}

	require.NoError(t, cfg.Save(path))
	loaded := LoadConfig(path)

	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigMissingOrMalformed(t *testing.T) {
	assert.Equal(t, Config{}, LoadConfig(filepath.Join(t.TempDir(), "nope.json")))

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	assert.Equal(t, Config{}, LoadConfig(path))
}
