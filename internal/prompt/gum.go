package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Gum drives the gum binary. The terminal stays attached on stdin and
// stderr so gum can draw; stdout is captured for the answer.
type Gum struct {
	Command []string
	Stdin   io.Reader
	Stderr  io.Writer
	Log     zerolog.Logger
}

// NewGum returns a Gum that runs command, which is either the gum path or
// a "nix run ... --" prefix.
func NewGum(command []string, log zerolog.Logger) *Gum {
	return &Gum{Command: command, Stdin: os.Stdin, Stderr: os.Stderr, Log: log}
}

// Confirm runs "gum confirm": exit 0 is yes, 1 is no, anything else is a
// cancellation.
func (g *Gum) Confirm(ctx context.Context, message string) (bool, error) {
	_, code, err := g.run(ctx, "confirm", message)
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, output.ErrCancelled
	}
}

// Choose runs "gum choose" and returns the trimmed selection.
func (g *Gum) Choose(ctx context.Context, choices []string, opts ChooseOptions) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	opts = opts.withDefaults()

	args := []string{
		"choose",
		"--header", opts.Header,
		"--cursor", opts.Cursor,
		"--height", strconv.Itoa(opts.Height),
		"--limit", strconv.Itoa(opts.Limit),
	}
	args = append(args, choices...)

	out, code, err := g.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", output.ErrCancelled
	}
	return strings.TrimSpace(out), nil
}

// run returns gum's stdout and exit code. err is set only when gum could
// not be started at all.
func (g *Gum) run(ctx context.Context, args ...string) (string, int, error) {
	if len(g.Command) == 0 {
		return "", 0, output.NewSystemError("gum command not configured")
	}
	argv := append(append([]string{}, g.Command...), args...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout bytes.Buffer
	cmd.Stdin = g.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = g.Stderr

	g.Log.Debug().Strs("argv", argv).Msg("gum")
	err := cmd.Run()
	if err == nil {
		return stdout.String(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 130
		}
		return stdout.String(), code, nil
	}
	name := filepath.Base(argv[0])
	return "", 0, output.NewSystemErrorWithCause(name+" could not be started: "+err.Error(), err)
}
