package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#EXTM3U\n"), 0o644))
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "rock.m3u", "ambient.m3u8", ".hidden.m3u", "jazz")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	got, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []Playlist{
		{Name: "ambient", Path: filepath.Join(dir, "ambient.m3u8")},
		{Name: "jazz", Path: filepath.Join(dir, "jazz")},
		{Name: "rock", Path: filepath.Join(dir, "rock.m3u")},
	}, got)
	assert.Equal(t, []string{"ambient", "jazz", "rock"}, Names(got))
}

func TestList_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	writeFiles(t, root, "file")
	empty := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))

	tests := []struct {
		name    string
		dir     string
		message string
	}{
		{name: "missing", dir: filepath.Join(root, "missing"), message: "does not exist"},
		{name: "not a directory", dir: file, message: "is not a directory"},
		{name: "empty", dir: empty, message: "No playlists found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := List(tt.dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), tt.dir)
			assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
		})
	}
}

func TestFind(t *testing.T) {
	playlists := []Playlist{
		{Name: "ambient", Path: "/music/ambient.m3u"},
		{Name: "rock", Path: "/music/rock.m3u"},
	}

	for _, name := range []string{"rock", "rock.m3u", "/music/rock.m3u", " rock "} {
		got, err := Find(playlists, name)
		require.NoError(t, err, name)
		assert.Equal(t, "/music/rock.m3u", got.Path)
	}

	_, err := Find(playlists, "polka")
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
}

func TestArgs(t *testing.T) {
	p := Playlist{Name: "rock", Path: "/music/rock.m3u"}

	tests := []struct {
		name   string
		prefix []string
		opts   Options
		want   []string
	}{
		{
			name:   "shuffle and loop",
			prefix: []string{"/usr/bin/mpv"},
			opts:   Options{Shuffle: true, Loop: true},
			want:   []string{"/usr/bin/mpv", "--loop-playlist", "--no-video", "--shuffle", "/music/rock.m3u"},
		},
		{
			name:   "no shuffle",
			prefix: []string{"/usr/bin/mpv"},
			opts:   Options{Loop: true},
			want:   []string{"/usr/bin/mpv", "--loop-playlist", "--no-video", "/music/rock.m3u"},
		},
		{
			name:   "no loop",
			prefix: []string{"mpv"},
			opts:   Options{Shuffle: true},
			want:   []string{"mpv", "--no-video", "--shuffle", "/music/rock.m3u"},
		},
		{
			name:   "nix prefix",
			prefix: []string{"nix", "run", "nixpkgs#mpv", "--"},
			opts:   Options{},
			want:   []string{"nix", "run", "nixpkgs#mpv", "--", "--no-video", "/music/rock.m3u"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Args(tt.prefix, p, tt.opts))
		})
	}
}

func TestArgs_DoesNotAliasPrefix(t *testing.T) {
	prefix := make([]string, 1, 8)
	prefix[0] = "mpv"
	a := Args(prefix, Playlist{Path: "/a"}, Options{})
	b := Args(prefix, Playlist{Path: "/b"}, Options{})
	assert.Equal(t, "/a", a[len(a)-1])
	assert.Equal(t, "/b", b[len(b)-1])
}
