// Package config provides directories and settings for moscripts.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Dir returns the moscripts configuration directory.
//
// Resolution:
//   - $MOSCRIPTS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/moscripts if set (respects XDG on any platform)
//   - %AppData%/moscripts on Windows
//   - ~/.config/moscripts on macOS and Linux
func Dir() string {
	if dir := os.Getenv("MOSCRIPTS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moscripts")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "moscripts")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moscripts")
}

// CacheDir returns the user cache root that MOTMP lives under.
//
// Resolution:
//   - $XDG_CACHE_HOME if set
//   - ~/.cache
func CacheDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CACHE_HOME")); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache")
}

// ExpandPath expands a leading "~" to the home directory and cleans the
// result. Relative paths stay relative.
func ExpandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") || strings.HasPrefix(pathValue, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if pathValue == "~" {
			return home, nil
		}
		return filepath.Join(home, pathValue[2:]), nil
	}
	return filepath.Clean(pathValue), nil
}
