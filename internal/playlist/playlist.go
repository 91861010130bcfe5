// Package playlist lists playlist files and builds mpv command lines for
// them.
package playlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Playlist is a playlist file addressed by its stem.
type Playlist struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Options are the mpv playback switches.
type Options struct {
	Shuffle bool
	Loop    bool
}

// List returns the visible regular files in dir sorted by name. A missing,
// non-directory or empty dir is a user error.
func List(dir string) ([]Playlist, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, output.NewUserErrorWithCause(
			fmt.Sprintf("Playlists directory does not exist. Please create it at `%s`.", dir), err)
	case err != nil:
		return nil, output.NewSystemErrorWithCause("read playlists directory: "+err.Error(), err)
	case !info.IsDir():
		return nil, output.NewUserError(
			fmt.Sprintf("Playlists directory is not a directory. Please create it at `%s`.", dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("read playlists directory: "+err.Error(), err)
	}

	var playlists []Playlist
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		playlists = append(playlists, Playlist{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	if len(playlists) == 0 {
		return nil, output.NewUserError(
			fmt.Sprintf("No playlists found. Please create at least one playlist in `%s`.", dir))
	}

	slices.SortFunc(playlists, func(a, b Playlist) int {
		return strings.Compare(a.Path, b.Path)
	})
	return playlists, nil
}

// Names returns the playlist stems in order.
func Names(playlists []Playlist) []string {
	names := make([]string, len(playlists))
	for i, p := range playlists {
		names[i] = p.Name
	}
	return names
}

// Find looks a playlist up by stem, file name or path.
func Find(playlists []Playlist, name string) (Playlist, error) {
	name = strings.TrimSpace(name)
	for _, p := range playlists {
		if p.Name == name || filepath.Base(p.Path) == name || p.Path == name {
			return p, nil
		}
	}
	return Playlist{}, output.NewUserError(fmt.Sprintf("Playlist not found: %s", name))
}

// Args builds the full player command line: prefix (mpv, or a nix run
// prefix), the playback switches, then the playlist path.
func Args(prefix []string, p Playlist, opts Options) []string {
	argv := append([]string{}, prefix...)
	if opts.Loop {
		argv = append(argv, "--loop-playlist")
	}
	argv = append(argv, "--no-video")
	if opts.Shuffle {
		argv = append(argv, "--shuffle")
	}
	return append(argv, p.Path)
}
