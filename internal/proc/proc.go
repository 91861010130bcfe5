// Package proc runs the external programs moscripts orchestrates.
package proc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Runner is the subprocess surface used by the command packages.
type Runner interface {
	// Output runs argv and returns its trimmed stdout.
	Output(ctx context.Context, argv []string) (string, error)
	// Attached runs argv in dir with the terminal attached and waits.
	Attached(ctx context.Context, dir string, argv []string) error
	// Exec hands the terminal to argv until it exits. A non-zero exit is
	// returned as *output.ChildExitError.
	Exec(ctx context.Context, argv []string) error
}

// DefaultKillDelay is how long Exec waits after SIGTERM before killing a
// child whose context was cancelled.
const DefaultKillDelay = 5 * time.Second

// Local runs programs on this machine.
type Local struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger

	// KillDelay overrides DefaultKillDelay when positive.
	KillDelay time.Duration
}

// NewLocal returns a Local bound to the process's standard streams.
func NewLocal(log zerolog.Logger) *Local {
	return &Local{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Log: log}
}

// Run executes a command with the given arguments and returns its trimmed
// stdout. Errors are *output.ExitError values.
func Run(ctx context.Context, name string, args ...string) (string, error) {
	return (&Local{Log: zerolog.Nop()}).Output(ctx, append([]string{name}, args...))
}

// Output implements Runner.
func (l *Local) Output(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", output.NewUserError("no command given")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	l.Log.Debug().Strs("argv", argv).Msg("run")
	if err := cmd.Run(); err != nil {
		return "", wrapRunError(argv[0], strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Attached implements Runner.
func (l *Local) Attached(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return output.NewUserError("no command given")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = l.Stdin, l.Stdout, l.Stderr

	l.Log.Debug().Strs("argv", argv).Str("dir", dir).Msg("run attached")
	if err := cmd.Run(); err != nil {
		return wrapRunError(argv[0], "", err)
	}
	return nil
}

// Exec implements Runner. It stands in for replacing the process image:
// the child owns the terminal, SIGTERM and SIGHUP are relayed to it, and
// SIGINT is left to the terminal's process group so the child sees it once.
func (l *Local) Exec(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return output.NewUserError("no command given")
	}
	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // argv is built by the caller from validated paths
	cmd.Stdin, cmd.Stdout, cmd.Stderr = l.Stdin, l.Stdout, l.Stderr

	l.Log.Debug().Strs("argv", argv).Msg("exec")
	if err := cmd.Start(); err != nil {
		return wrapRunError(argv[0], "", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case err := <-done:
			return childResult(argv[0], err)
		case sig := <-signals:
			if sig == os.Interrupt {
				continue
			}
			l.Log.Debug().Str("signal", sig.String()).Msg("relaying signal")
			_ = cmd.Process.Signal(sig)
		case <-ctx.Done():
			_ = cmd.Process.Signal(syscall.SIGTERM)
			err := l.waitOrKill(cmd, done)
			if res := childResult(argv[0], err); res != nil {
				return res
			}
			return ctx.Err()
		}
	}
}

// waitOrKill waits for a child that was sent SIGTERM and kills it once the
// kill delay has passed.
func (l *Local) waitOrKill(cmd *exec.Cmd, done <-chan error) error {
	delay := l.KillDelay
	if delay <= 0 {
		delay = DefaultKillDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		l.Log.Debug().Dur("delay", delay).Msg("child ignored SIGTERM, killing")
		_ = cmd.Process.Kill()
		return <-done
	}
}

// childResult converts a Wait error into a propagated exit status.
func childResult(program string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				code = 128 + int(ws.Signal())
			} else {
				code = output.ExitSystemError
			}
		}
		return output.NewChildExitError(filepath.Base(program), code)
	}
	return output.NewSystemErrorWithCause(filepath.Base(program)+" failed: "+err.Error(), err)
}

// wrapRunError maps a Run error to an *output.ExitError.
func wrapRunError(program, stderr string, err error) error {
	name := filepath.Base(program)

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		return output.NewSystemErrorWithCause(name+" not found: ensure it is installed and in PATH", err)
	}

	if stderr == "" {
		stderr = err.Error()
	}
	return output.NewSystemErrorWithCause(name+" failed: "+stderr, err)
}
