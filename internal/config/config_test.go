package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvTargetTZ, EnvTimeFormat, EnvMotmpDir, EnvPlaylistsDir, EnvLogLevel, EnvPasswordLen,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", cfg.Timestamp.TargetTZ)
	assert.Equal(t, "%Y-%m-%d %I:%M:%S %p", cfg.Timestamp.Format)
	assert.Equal(t, "/xdg/cache/marimo/motmp", cfg.Motmp.Dir)
	assert.Equal(t, "/xdg/cache/marimo/motmp/.venv", cfg.Motmp.Venv)
	assert.Equal(t, []string{"marimo[recommended]", "python-lsp-server", "websockets", "watchdog"}, cfg.Motmp.Packages)
	assert.True(t, cfg.Playlists.Shuffle)
	assert.True(t, cfg.Playlists.Loop)
	assert.Equal(t, 64, cfg.Password.Length)
	assert.Equal(t, "auto", cfg.Prompt.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
log_level = "debug"

[timestamp]
target_tz = "Europe/Berlin"

[motmp]
dir = "/srv/motmp"

[playlists]
dir = "/srv/music"
shuffle = false

[password]
length = 24

[prompt]
backend = "Fuzzy"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Europe/Berlin", cfg.Timestamp.TargetTZ)
	assert.Equal(t, "%Y-%m-%d %I:%M:%S %p", cfg.Timestamp.Format, "unset keys keep defaults")
	assert.Equal(t, "/srv/motmp", cfg.Motmp.Dir)
	assert.Equal(t, "/srv/motmp/.venv", cfg.Motmp.Venv)
	assert.Equal(t, "/srv/music", cfg.Playlists.Dir)
	assert.False(t, cfg.Playlists.Shuffle)
	assert.True(t, cfg.Playlists.Loop)
	assert.Equal(t, 24, cfg.Password.Length)
	assert.Equal(t, "fuzzy", cfg.Prompt.Backend)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[timestamp]
target_tz = "Europe/Berlin"

[password]
length = 24
`)
	t.Setenv(EnvTargetTZ, "Asia/Tokyo")
	t.Setenv(EnvPasswordLen, "12")
	t.Setenv(EnvMotmpDir, "/env/motmp")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", cfg.Timestamp.TargetTZ)
	assert.Equal(t, 12, cfg.Password.Length)
	assert.Equal(t, "/env/motmp", cfg.Motmp.Dir)
	assert.Equal(t, "/env/motmp/.venv", cfg.Motmp.Venv)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantMsg string
	}{
		{name: "unknown key", body: "[timestamp]\nzone = \"UTC\"\n", wantMsg: "zone"},
		{name: "malformed toml", body: "[timestamp\n", wantMsg: "parse config"},
		{name: "zero length", body: "[password]\nlength = 0\n", wantMsg: "password.length"},
		{name: "bad backend", body: "[prompt]\nbackend = \"dmenu\"\n", wantMsg: "prompt.backend"},
		{name: "non-numeric env length", env: map[string]string{EnvPasswordLen: "lots"}, wantMsg: EnvPasswordLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("MOSCRIPTS_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "config.toml"), DefaultPath())
}
