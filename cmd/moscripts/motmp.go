package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/execpath"
	"github.com/andrewthomaslee/moscripts/internal/motmp"
	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/prompt"
)

type motmpFlags struct {
	venv      string
	scan      bool
	prev      bool
	oldest    bool
	assumeYes bool
}

// newMotmpCmd creates the motmp command.
func newMotmpCmd() *cobra.Command {
	flags := &motmpFlags{}

	cmd := &cobra.Command{
		Use:   "motmp [DIR]",
		Short: "Create and edit throwaway marimo notebooks",
		Long: `Create a uniquely named scratch notebook in DIR and open it in marimo.

On first use the MOTMP directory (~/.cache/marimo/motmp by default) gets a
virtual environment bootstrapped with uv after confirmation.

Examples:
  moscripts motmp              # new notebook
  moscripts motmp --prev       # reopen an earlier notebook
  moscripts motmp --scan       # list notebooks and offer to wipe them
  moscripts motmp --scan --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runMotmp(cmd, dir, flags)
		},
	}

	cmd.Flags().StringVar(&flags.venv, "venv", "", "Virtual environment to launch marimo from (default: <motmp dir>/.venv)")
	cmd.Flags().BoolVar(&flags.scan, "scan", false, "List MOTMP files and offer to wipe them")
	cmd.Flags().BoolVar(&flags.prev, "prev", false, "Choose a previous notebook to reopen")
	cmd.Flags().BoolVar(&flags.oldest, "oldest-first", false, "Sort scanned notebooks oldest first")
	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Answer yes to every prompt; --prev picks the newest notebook")
	cmd.MarkFlagsMutuallyExclusive("scan", "prev")

	return cmd
}

func runMotmp(cmd *cobra.Command, dir string, flags *motmpFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if dir == "" {
		dir = a.cfg.Motmp.Dir
	}
	venv := a.cfg.Motmp.Venv
	if flags.venv != "" {
		venv = flags.venv
	}
	dir, venv = filepath.Clean(dir), filepath.Clean(venv)

	asker, err := a.prompter(flags.assumeYes)
	if err != nil {
		return a.fail(err)
	}

	m := &motmp.Manager{
		Dir:      a.cfg.Motmp.Dir,
		Venv:     venv,
		Packages: a.cfg.Motmp.Packages,
		Prompter: asker,
		Runner:   a.runner,
		Out:      a.printer,
		Log:      a.log,
		UV:       func() ([]string, error) { return execpath.Resolve("uv") },
	}

	// The managed dir is created on demand; any other DIR must exist.
	if dir != m.Dir && !isDir(dir) {
		return a.fail(output.NewUserError("🚨 Directory not found at " + dir))
	}
	if venv == filepath.Join(m.Dir, motmp.VenvDirName) && !m.Initialized() {
		if err := m.Init(ctx); err != nil {
			return a.fail(err)
		}
	}
	if dir == m.Dir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
		}
	}
	if !isDir(venv) {
		return a.fail(output.NewUserError("🚨 Virtual environment not found at " + venv))
	}

	order := motmp.NewestFirst
	if flags.oldest {
		order = motmp.OldestFirst
	}

	switch {
	case flags.scan:
		return runMotmpScan(cmd, a, asker, dir, order)
	case flags.prev:
		return runMotmpPrev(cmd, a, m, asker, dir, order)
	}

	file, err := motmp.Create(dir)
	if err != nil {
		return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
	}
	a.printer.Notice("🚀 Launching %s", file)
	if err := m.Launch(ctx, file); err != nil {
		return a.fail(err)
	}
	return nil
}

// motmpScanResult is the JSON shape of --scan.
type motmpScanResult struct {
	Dir       string           `json:"dir"`
	Notebooks []motmp.Notebook `json:"notebooks"`
	Wiped     int              `json:"wiped"`
}

func runMotmpScan(cmd *cobra.Command, a *app, asker prompt.Prompter, dir string, order motmp.Order) error {
	notebooks, err := motmp.Scan(dir, order)
	if err != nil {
		return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
	}

	a.printer.Notice("🔎 Found %d MOTMP files.", len(notebooks))
	result := motmpScanResult{Dir: dir, Notebooks: notebooks}
	if len(notebooks) == 0 {
		if a.printer.IsJSON() {
			return a.printer.WriteJSON(result)
		}
		return nil
	}

	if !a.printer.IsJSON() {
		a.printer.Table([]string{"Notebook", "Created", "Session"}, notebookRows(notebooks))
	}

	wipe, err := asker.Confirm(cmd.Context(), "🗑️ Wipe files?")
	if err != nil {
		return a.fail(err)
	}
	if wipe {
		removed, wipeErr := motmp.Wipe(notebooks, a.log)
		result.Wiped = removed
		if wipeErr != nil {
			a.printer.Warn("some files could not be wiped: %v", wipeErr)
		}
		a.printer.Done("Wiped %d MOTMP files.", removed)
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(result)
	}
	return nil
}

func runMotmpPrev(cmd *cobra.Command, a *app, m *motmp.Manager, asker prompt.Prompter, dir string, order motmp.Order) error {
	notebooks, err := motmp.Scan(dir, order)
	if err != nil {
		return a.fail(output.NewSystemErrorWithCause(err.Error(), err))
	}
	if len(notebooks) == 0 {
		return a.fail(output.NewUserError("no MOTMP files found in " + dir))
	}

	names := make([]string, len(notebooks))
	byName := make(map[string]string, len(notebooks))
	for i, nb := range notebooks {
		names[i] = nb.Name()
		byName[nb.Name()] = nb.Path
	}

	choice, err := asker.Choose(cmd.Context(), names, prompt.ChooseOptions{Header: "Choose a notebook:"})
	if err != nil {
		return a.fail(err)
	}
	file, ok := byName[choice]
	if !ok {
		return a.fail(output.NewUserError("unknown notebook " + choice))
	}

	a.printer.Notice("🚀 Launching %s", file)
	if err := m.Launch(cmd.Context(), file); err != nil {
		return a.fail(err)
	}
	return nil
}

func notebookRows(notebooks []motmp.Notebook) [][]string {
	rows := make([][]string, 0, len(notebooks))
	for _, nb := range notebooks {
		session := "-"
		if nb.Session != "" {
			session = filepath.Base(nb.Session)
		}
		rows = append(rows, []string{nb.Name(), nb.Created.Local().Format(time.DateTime), session})
	}
	return rows
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
