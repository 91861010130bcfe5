package config

import "path/filepath"

const (
	defaultTargetTZ       = "America/Chicago"
	defaultTimeFormat     = "%Y-%m-%d %I:%M:%S %p"
	defaultVenvName       = ".venv"
	defaultPlaylistsDir   = "~/Music/Playlists"
	defaultPasswordLength = 64
	defaultLogLevel       = "warn"
	defaultPromptBackend  = "auto"
)

var defaultMotmpPackages = []string{
	"marimo[recommended]",
	"python-lsp-server",
	"websockets",
	"watchdog",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LogLevel: defaultLogLevel,
		Prompt:   Prompt{Backend: defaultPromptBackend},
		Timestamp: Timestamp{
			TargetTZ: defaultTargetTZ,
			Format:   defaultTimeFormat,
		},
		Motmp: Motmp{
			Dir:      defaultMotmpDir(),
			Packages: append([]string(nil), defaultMotmpPackages...),
		},
		Playlists: Playlists{
			Dir:     defaultPlaylistsDir,
			Shuffle: true,
			Loop:    true,
		},
		Password: Password{Length: defaultPasswordLength},
	}
}

// defaultMotmpDir is <cache>/marimo/motmp.
func defaultMotmpDir() string {
	cache := CacheDir()
	if cache == "" {
		return filepath.Join("~", ".cache", "marimo", "motmp")
	}
	return filepath.Join(cache, "marimo", "motmp")
}
