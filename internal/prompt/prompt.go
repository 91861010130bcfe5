// Package prompt asks the user to confirm an action or pick from a list.
//
// The gum backend shells out to charmbracelet's gum. When gum is not
// installed, a built-in fuzzy finder is used instead. Static answers every
// question without a terminal and backs --yes.
package prompt

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/andrewthomaslee/moscripts/internal/execpath"
	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Backend names accepted by New.
const (
	BackendAuto  = "auto"
	BackendGum   = "gum"
	BackendFuzzy = "fuzzy"
)

// ErrNoChoices is returned by Choose when there is nothing to pick from.
var ErrNoChoices = errors.New("no choices provided")

// Prompter is implemented by every prompt backend.
//
// A cancelled prompt (Esc, Ctrl-C, or any unexpected exit of the prompt
// program) returns output.ErrCancelled.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Choose(ctx context.Context, choices []string, opts ChooseOptions) (string, error)
}

// ChooseOptions tunes the chooser. Zero fields take the defaults.
type ChooseOptions struct {
	Header string
	Cursor string
	Height int
	Limit  int
}

// Chooser defaults.
const (
	DefaultHeader = "Choose:"
	DefaultCursor = "> "
	DefaultHeight = 10
	DefaultLimit  = 1
)

func (o ChooseOptions) withDefaults() ChooseOptions {
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if o.Cursor == "" {
		o.Cursor = DefaultCursor
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// New picks a backend by name. "auto" prefers gum when it is on PATH and
// otherwise falls back to the fuzzy finder. "gum" may be fetched through
// nix when it is not installed.
func New(backend string, log zerolog.Logger) (Prompter, error) {
	switch backend {
	case "", BackendAuto:
		if path, err := execpath.Which("gum"); err == nil {
			return NewGum([]string{path}, log), nil
		}
		log.Debug().Msg("gum not on PATH, using fuzzy finder")
		return NewFuzzy(), nil
	case BackendGum:
		prefix, err := execpath.Resolve("gum")
		if err != nil {
			return nil, output.NewUserErrorWithCause(err.Error(), err)
		}
		return NewGum(prefix, log), nil
	case BackendFuzzy:
		return NewFuzzy(), nil
	default:
		return nil, output.NewUserError("unknown prompt backend " + backend + " (use auto, gum or fuzzy)")
	}
}
