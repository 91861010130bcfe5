package motmp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/prompt"
	"github.com/andrewthomaslee/moscripts/internal/proc"
)

// LockFileName guards environment bootstrap inside the MOTMP dir.
const LockFileName = ".motmp.lock"

// ProjectFile is written by "uv init"; its presence means init already ran.
const ProjectFile = "pyproject.toml"

// Manager owns the MOTMP directory and its environment.
type Manager struct {
	Dir      string
	Venv     string
	Packages []string

	Prompter prompt.Prompter
	Runner   proc.Runner
	Out      *output.Printer
	Log      zerolog.Logger

	// UV resolves the uv command prefix. It is only called when the
	// environment has to be bootstrapped.
	UV func() ([]string, error)
}

// Env returns the environment notebooks are launched with.
func (m *Manager) Env() Env {
	return Env{Dir: m.Venv}
}

func (m *Manager) managedEnv() Env {
	return Env{Dir: filepath.Join(m.Dir, VenvDirName)}
}

// Initialized reports whether the managed environment is usable. A
// half-built environment left by a failed bootstrap does not count.
func (m *Manager) Initialized() bool {
	return m.managedEnv().Validate() == nil
}

// Init creates the MOTMP dir and, after asking, bootstraps its virtual
// environment with uv. Declining is a user error. Init is a no-op when the
// environment is already usable and resumes a bootstrap that failed part way.
func (m *Manager) Init(ctx context.Context) error {
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return output.NewSystemErrorWithCause("create "+m.Dir+": "+err.Error(), err)
	}

	lock := flock.New(filepath.Join(m.Dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return output.NewSystemErrorWithCause("acquire motmp lock: "+err.Error(), err)
	}
	if !ok {
		return output.NewUserError("another motmp setup is already running in " + m.Dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			m.Log.Warn().Err(err).Msg("failed to release motmp lock")
		}
	}()

	if m.Initialized() {
		return nil
	}

	env := m.managedEnv()
	m.Out.Notice("Initializing motmp...")
	if env.Exists() {
		m.Out.Notice("Virtual environment at %s is incomplete", env.Dir)
	} else {
		m.Out.Notice("Virtual environment not found at %s", env.Dir)
	}

	create, err := m.Prompter.Confirm(ctx, "Create virtual environment?")
	if err != nil {
		return err
	}
	if !create {
		return output.NewUserError("womp womp")
	}

	if err := m.bootstrap(ctx); err != nil {
		return err
	}
	m.Out.Done("🎉 Setup MOTMP complete.")
	return nil
}

func (m *Manager) bootstrap(ctx context.Context) error {
	if m.UV == nil {
		return output.NewSystemError("uv resolver not configured")
	}
	uv, err := m.UV()
	if err != nil {
		return output.NewUserErrorWithCause(err.Error(), err)
	}

	if len(m.Packages) == 0 {
		return output.NewUserError("no packages configured for the motmp environment")
	}

	var steps [][]string
	if _, err := os.Stat(filepath.Join(m.Dir, ProjectFile)); err == nil {
		m.Log.Debug().Str("dir", m.Dir).Msg("uv project exists, skipping uv init")
	} else {
		steps = append(steps, []string{"init", "--bare", "--name", "motmp"})
	}
	steps = append(steps, append([]string{"add"}, m.Packages...))

	for _, step := range steps {
		argv := append(append([]string{}, uv...), step...)
		m.Log.Debug().Strs("argv", argv).Str("dir", m.Dir).Msg("bootstrap")
		if err := m.Runner.Attached(ctx, m.Dir, argv); err != nil {
			return fmt.Errorf("failed to create virtual environment: %w", err)
		}
	}
	return nil
}

// LaunchArgs is the marimo command line for editing file.
func (m *Manager) LaunchArgs(file string) []string {
	return []string{m.Env().Marimo(), "edit", file, "--no-token"}
}

// Launch validates the environment and hands the terminal to marimo. The
// editor's exit status is returned as an *output.ChildExitError.
func (m *Manager) Launch(ctx context.Context, file string) error {
	if err := m.Env().Validate(); err != nil {
		return output.NewUserErrorWithCause(err.Error(), err)
	}
	return m.Runner.Exec(ctx, m.LaunchArgs(file))
}
