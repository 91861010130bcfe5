package main

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/config"
	"github.com/andrewthomaslee/moscripts/internal/execpath"
	"github.com/andrewthomaslee/moscripts/internal/motmp"
	"github.com/andrewthomaslee/moscripts/internal/playlist"
)

// toolRequirements lists the programs the commands shell out to.
func toolRequirements() []execpath.Requirement {
	reqs := []execpath.Requirement{
		{Name: "nix", Command: "nix", Description: "fetches missing tools from nixpkgs", Optional: true},
		{Name: "gum", Command: "gum", Description: "interactive prompts (fuzzy finder fallback)", Optional: true},
		{Name: "mpv", Command: "mpv", Description: "playlist player", NixFallback: true},
		{Name: "uv", Command: "uv", Description: "bootstraps the motmp environment", NixFallback: true},
	}
	if runtime.GOOS == "linux" {
		reqs = append(reqs, execpath.Requirement{
			Name: "timedatectl", Command: "timedatectl", Description: "system timezone query", Optional: true,
		})
	}
	return reqs
}

// runToolChecks reports availability of external programs.
func runToolChecks() []checkResult {
	statuses := execpath.Check(toolRequirements())
	checks := make([]checkResult, 0, len(statuses))
	for _, s := range statuses {
		checks = append(checks, toolCheck(s))
	}
	return checks
}

func toolCheck(s execpath.Status) checkResult {
	switch {
	case s.Available && s.ViaNix:
		return checkResult{Name: s.Name, Status: checkWarn, Message: s.Detail, Hint: "Install " + s.Command + " to skip nix run"}
	case s.Available:
		return checkResult{Name: s.Name, Status: checkPass, Message: s.Path}
	case s.Optional:
		return checkResult{Name: s.Name, Status: checkWarn, Message: s.Detail, Hint: s.Description}
	default:
		return checkResult{Name: s.Name, Status: checkFail, Message: s.Detail, Hint: "Install " + s.Command + " or nix"}
	}
}

// runMotmpChecks inspects the notebook directory and environment.
func runMotmpChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)

	if isDir(cfg.Motmp.Dir) {
		notebooks, err := motmp.Scan(cfg.Motmp.Dir, motmp.NewestFirst)
		if err != nil {
			checks = append(checks, checkResult{Name: "Directory", Status: checkFail, Message: err.Error()})
		} else {
			checks = append(checks, checkResult{
				Name:    "Directory",
				Status:  checkPass,
				Message: cfg.Motmp.Dir + " (" + pluralize(len(notebooks), "notebook") + ")",
			})
		}
	} else {
		checks = append(checks, checkResult{
			Name:    "Directory",
			Status:  checkWarn,
			Message: cfg.Motmp.Dir + " not created yet",
			Hint:    "Run 'moscripts motmp' to set it up",
		})
	}

	env := motmp.Env{Dir: cfg.Motmp.Venv}
	if err := env.Validate(); err != nil {
		checks = append(checks, checkResult{
			Name:    "Environment",
			Status:  checkWarn,
			Message: err.Error(),
			Hint:    "Run 'moscripts motmp' to bootstrap it with uv",
		})
	} else {
		checks = append(checks, checkResult{Name: "Environment", Status: checkPass, Message: env.Marimo()})
	}
	return checks
}

// runConfigChecks validates settings beyond what config.Load enforces.
func runConfigChecks(cmd *cobra.Command, a *app) []checkResult {
	checks := make([]checkResult, 0, 3)

	path := stringFlag(cmd, "config")
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		checks = append(checks, checkResult{Name: "Config File", Status: checkPass, Message: "using defaults (" + path + " not present)"})
	} else {
		checks = append(checks, checkResult{Name: "Config File", Status: checkPass, Message: path})
	}

	if loc, err := a.zones.Lookup(cmd.Context(), a.cfg.Timestamp.TargetTZ); err != nil {
		checks = append(checks, checkResult{Name: "Timezone", Status: checkFail, Message: err.Error(), Hint: "Fix timestamp.target_tz"})
	} else {
		checks = append(checks, checkResult{Name: "Timezone", Status: checkPass, Message: loc.String()})
	}

	if lists, err := playlist.List(a.cfg.Playlists.Dir); err != nil {
		checks = append(checks, checkResult{Name: "Playlists", Status: checkWarn, Message: err.Error()})
	} else {
		checks = append(checks, checkResult{Name: "Playlists", Status: checkPass, Message: pluralize(len(lists), "playlist")})
	}
	return checks
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
