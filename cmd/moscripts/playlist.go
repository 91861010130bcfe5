package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/execpath"
	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/playlist"
	"github.com/andrewthomaslee/moscripts/internal/prompt"
)

type playlistFlags struct {
	scan      bool
	shuffle   bool
	noShuffle bool
	loop      bool
	noLoop    bool
	dir       string
	dryRun    bool
}

// newPlaylistCmd creates the playlist command.
func newPlaylistCmd() *cobra.Command {
	flags := &playlistFlags{}

	cmd := &cobra.Command{
		Use:     "playlist [NAME]",
		Aliases: []string{"mpv"},
		Short:   "Play a playlist with mpv",
		Long: `Play a playlist from ~/Music/Playlists with mpv (audio only).

NAME is a playlist file name or its stem and defaults to the first
playlist. mpv is run from PATH, or through "nix run nixpkgs#mpv" when only
nix is installed.

Examples:
  moscripts playlist
  moscripts playlist focus --no-shuffle
  moscripts mpv --scan
  moscripts playlist --dry-run --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runPlaylist(cmd, name, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.scan, "scan", false, "Choose a playlist interactively")
	cmd.Flags().BoolVar(&flags.shuffle, "shuffle", false, "Shuffle the playlist (default from config: on)")
	cmd.Flags().BoolVar(&flags.noShuffle, "no-shuffle", false, "Play in order")
	cmd.Flags().BoolVar(&flags.loop, "loop", false, "Loop the playlist (default from config: on)")
	cmd.Flags().BoolVar(&flags.noLoop, "no-loop", false, "Stop at the end of the playlist")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Playlists directory (default: ~/Music/Playlists)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the mpv command instead of running it")
	cmd.MarkFlagsMutuallyExclusive("shuffle", "no-shuffle")
	cmd.MarkFlagsMutuallyExclusive("loop", "no-loop")

	return cmd
}

func runPlaylist(cmd *cobra.Command, name string, flags *playlistFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	dir := a.cfg.Playlists.Dir
	if flags.dir != "" {
		dir = flags.dir
	}
	playlists, err := playlist.List(dir)
	if err != nil {
		return a.fail(err)
	}

	chosen := playlists[0]
	switch {
	case flags.scan:
		a.printer.Info("🔎 Found %d Playlists.", len(playlists))
		asker, err := a.prompter(false)
		if err != nil {
			return a.fail(err)
		}
		choice, err := asker.Choose(cmd.Context(), playlist.Names(playlists), prompt.ChooseOptions{})
		if err != nil {
			return a.fail(err)
		}
		if chosen, err = playlist.Find(playlists, choice); err != nil {
			return a.fail(err)
		}
	case name != "":
		if chosen, err = playlist.Find(playlists, name); err != nil {
			return a.fail(err)
		}
	}

	opts := playlist.Options{Shuffle: a.cfg.Playlists.Shuffle, Loop: a.cfg.Playlists.Loop}
	if flags.shuffle {
		opts.Shuffle = true
	}
	if flags.noShuffle {
		opts.Shuffle = false
	}
	if flags.loop {
		opts.Loop = true
	}
	if flags.noLoop {
		opts.Loop = false
	}

	prefix, err := execpath.Resolve("mpv")
	if err != nil {
		return a.fail(output.NewUserErrorWithCause(err.Error(), err))
	}
	argv := playlist.Args(prefix, chosen, opts)

	if flags.dryRun {
		if a.printer.IsJSON() {
			return a.printer.WriteJSON(map[string]any{"playlist": chosen, "argv": argv})
		}
		a.printer.Println(strings.Join(argv, " "))
		return nil
	}

	a.printer.Done("🎵 Launching %s", chosen.Path)
	a.log.Debug().Strs("argv", argv).Msg("mpv")
	if err := a.runner.Exec(cmd.Context(), argv); err != nil {
		return a.fail(err)
	}
	return nil
}
